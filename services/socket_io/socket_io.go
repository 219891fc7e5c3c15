package socket_io

import (
	"Magnate/services/ledger"
	"Magnate/services/redis"
	"Magnate/services/socket_io/handlers"
	gamesync "Magnate/sync"

	socketio_types "Magnate/services/socket_io/types"
	socketio_utils "Magnate/services/socket_io/utils"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/log"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type MySocketServer socketio_types.SocketServer

func (sio *MySocketServer) Start(router *gin.Engine, registry *ledger.Registry,
	redisClient *redis.RedisClient, sm *gamesync.SyncManager) {
	log.DEBUG = true
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// NOTE: higher ping interval and timeout to 1) reduce network load and 2) support slower networks
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	// KEY: initialize the maps, otherwise it panics
	sio.ClientConnections = make(map[string]*socket.Socket)
	sio.BroadcastGames = make(map[string]bool)

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		// Check if the client presented an identity
		success, clientID := socketio_utils.VerifyClientConnection(client)
		if !success {
			return
		}

		// Add connection to map
		(*socketio_types.SocketServer)(sio).AddConnection(clientID, client)

		fmt.Println("A client just connected!: ", clientID)

		typedSio := (*socketio_types.SocketServer)(sio)

		// Session membership
		client.On("join_game", handlers.HandleJoinGame(registry, client, redisClient, clientID, typedSio, sm))
		client.On("leave_game", handlers.HandleLeaveGame(registry, client, redisClient, clientID, typedSio))
		client.On("get_snapshot", handlers.HandleGetSnapshot(registry, client, clientID))
		client.On("ping_presence", handlers.HandlePing(redisClient, client, clientID))

		// Game flow
		client.On("start_game", handlers.HandleStartGame(registry, client, clientID))
		client.On("roll_dice", handlers.HandleRollDice(registry, client, clientID))
		client.On("manual_move", handlers.HandleManualMove(registry, client, clientID))
		client.On("move_player", handlers.HandleMovePlayer(registry, client, clientID))
		client.On("send_to_jail", handlers.HandleSendToJail(registry, client, clientID))
		client.On("toggle_jail", handlers.HandleToggleJail(registry, client, clientID))
		client.On("pay_bail", handlers.HandlePayBail(registry, client, clientID))
		client.On("increment_jail_turns", handlers.HandleIncrementJailTurns(registry, client, clientID))
		client.On("next_turn", handlers.HandleNextTurn(registry, client, clientID))
		client.On("end_and_restart", handlers.HandleEndAndRestart(registry, client, clientID, typedSio, sm))

		// Economy
		client.On("update_balance", handlers.HandleUpdateBalance(registry, client, clientID))
		client.On("transfer_money", handlers.HandleTransferMoney(registry, client, clientID))
		client.On("assign_property", handlers.HandleAssignProperty(registry, client, clientID))
		client.On("toggle_mortgage", handlers.HandleToggleMortgage(registry, client, clientID))
		client.On("improve_property", handlers.HandleImproveProperty(registry, client, clientID))
		client.On("take_loan", handlers.HandleTakeLoan(registry, client, clientID))
		client.On("repay_loan", handlers.HandleRepayLoan(registry, client, clientID))
		client.On("calculate_rent", handlers.HandleCalculateRent(registry, client, clientID))
		client.On("net_worth", handlers.HandleNetWorth(registry, client, clientID))

		// Trades
		client.On("create_trade", handlers.HandleCreateTrade(registry, client, clientID))
		client.On("respond_trade", handlers.HandleRespondTrade(registry, client, clientID))
		client.On("cancel_trade", handlers.HandleCancelTrade(registry, client, clientID))

		// Settings
		client.On("set_starting_money", handlers.HandleSetStartingMoney(registry, client, clientID))
		client.On("set_multipliers", handlers.HandleSetMultipliers(registry, client, clientID))
		client.On("set_property_override", handlers.HandleSetPropertyOverride(registry, client, clientID))
		client.On("set_base_property", handlers.HandleSetBaseProperty(registry, client, clientID))
		client.On("set_dice_mode", handlers.HandleSetDiceMode(registry, client, clientID))
		client.On("set_rent_mode", handlers.HandleSetRentMode(registry, client, clientID))
		client.On("set_show_group_house_totals", handlers.HandleSetShowGroupHouseTotals(registry, client, clientID))
		client.On("set_jail_bail", handlers.HandleSetJailBail(registry, client, clientID))
		client.On("set_bank_total", handlers.HandleSetBankTotal(registry, client, clientID))
		client.On("set_bank_low_warning", handlers.HandleSetBankLowWarning(registry, client, clientID))
		client.On("apply_settings", handlers.HandleApplySettings(registry, client, clientID))
		client.On("reset_settings", handlers.HandleResetSettings(registry, client, clientID))

		// Undo log
		client.On("get_undo_log", handlers.HandleGetUndoLog(registry, client, clientID))
		client.On("revert_undo", handlers.HandleRevertUndo(registry, client, clientID))

		// Cross-node reconciliation
		client.On("sync_event", handlers.HandleSyncEvent(registry, client, clientID))

		// NOTE: will remove sio connection from map
		client.On("disconnecting", handlers.HandleDisconnecting(clientID, typedSio, redisClient))
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	SignalC := make(chan os.Signal, 1)

	signal.Notify(SignalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				sio.Sio_server.Close(nil)
				os.Exit(0)
			}
		}
	}()

	fmt.Println("Socket server started")
}
