package socketio_types

import (
	"sync"

	"github.com/zishang520/socket.io/v2/socket"
)

// SocketServer is a struct that contains the socket.io server and a map of socket connections.
// It is used to handle socket.io connections.
type SocketServer struct {
	Sio_server *socket.Server
	// Map to track clientID -> socket connections
	ClientConnections map[string]*socket.Socket
	// Games whose store events are already being broadcast to their room
	BroadcastGames map[string]bool
	mutex          sync.RWMutex
}

func NewSocketServer() *SocketServer {
	return &SocketServer{
		ClientConnections: make(map[string]*socket.Socket),
		BroadcastGames:    make(map[string]bool),
	}
}

// Add methods to manage connections
func (s *SocketServer) AddConnection(clientID string, socket *socket.Socket) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.ClientConnections[clientID] = socket
}

func (s *SocketServer) RemoveConnection(clientID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.ClientConnections, clientID)
}

func (s *SocketServer) GetConnection(clientID string) (*socket.Socket, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	socket, exists := s.ClientConnections[clientID]
	return socket, exists
}

// MarkBroadcast records that a game's store feed is wired to its room.
// Returns false when the game was already marked, so the wiring happens once.
func (s *SocketServer) MarkBroadcast(gameID string) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.BroadcastGames[gameID] {
		return false
	}
	s.BroadcastGames[gameID] = true
	return true
}

func (s *SocketServer) UnmarkBroadcast(gameID string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.BroadcastGames, gameID)
}
