package server

import (
	"encoding/json"
	"net/http"
	"net/rpc"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/warithr621/game-theory/broadcast"
	"github.com/warithr621/game-theory/config"
	"github.com/warithr621/game-theory/deck"
	"github.com/warithr621/game-theory/lobby"
	"github.com/warithr621/game-theory/logger"
	"github.com/warithr621/game-theory/monitor"
	"github.com/warithr621/game-theory/network"
	"github.com/warithr621/game-theory/persistence"
	gamerpc "github.com/warithr621/game-theory/rpc"
	"github.com/warithr621/game-theory/services"
	"github.com/warithr621/game-theory/session"
	"github.com/warithr621/game-theory/timer"
)

// defaultLobbyID is the single lobby every connection joins. The manager is
// keyed, so multi-lobby support only needs a lobby id in the join payload.
const defaultLobbyID = "main"

type GameServer struct {
	addr           string
	metricsAddr    string
	countdownTicks int
	minPlayers     int

	upgrader       websocket.Upgrader
	sessionManager *session.Manager
	lobbyManager   *lobby.Manager
	broadcaster    lobby.Broadcaster
	recordService  *services.RecordService
	timerManager   *timer.Manager
	mon            *monitor.Monitor
	rpcServer      *gamerpc.Server
	shutdownChan   chan struct{}
}

func NewGameServer(cfg *config.Config, store persistence.Store) *GameServer {
	s := &GameServer{
		addr:           cfg.Server.HTTPAddress,
		metricsAddr:    cfg.Server.MetricsAddress,
		countdownTicks: cfg.Game.CountdownTicks,
		minPlayers:     cfg.Game.MinPlayers,
		sessionManager: session.NewManager(),
		lobbyManager:   lobby.NewManager(),
		timerManager:   timer.NewManager(),
		mon:            monitor.NewMonitor("gametheory"),
		shutdownChan:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // CORS is the host's problem
			},
		},
	}

	s.broadcaster = broadcast.NewSessionBroadcaster(s.sessionManager)
	s.recordService = services.NewRecordService(store, s.mon)

	rpcServer, err := gamerpc.NewServer(cfg.Server.RPCAddress)
	if err != nil {
		logger.Log.Fatalf("Failed to create RPC server: %v", err)
	}
	s.rpcServer = rpcServer

	opsService := gamerpc.NewOpsService(s.recordService, s.lobbyManager)
	rpc.Register(opsService)

	return s
}

func (s *GameServer) Start() error {
	go s.rpcServer.Start()
	s.mon.StartServer(s.metricsAddr)

	http.HandleFunc("/ws", s.handleWebSocket)
	logger.Log.Infof("Game server listening on %s", s.addr)
	return http.ListenAndServe(s.addr, nil)
}

func (s *GameServer) Shutdown() {
	close(s.shutdownChan)
	s.rpcServer.Stop()
	s.timerManager.Stop()
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(conn)
}

func (s *GameServer) handleConnection(conn *websocket.Conn) {
	wsConn := network.NewWSConnection(conn)
	sess := session.NewSession(uuid.New().String(), wsConn)
	s.sessionManager.Add(sess)
	s.mon.IncOnlinePlayers()

	logger.Log.Infof("New connection from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())

	defer func() {
		logger.Log.Infof("Connection closed from %s, session ID: %s", wsConn.RemoteAddr(), sess.GetID())
		if sess.LobbyID != "" {
			if l, exists := s.lobbyManager.Get(sess.LobbyID); exists {
				l.Disconnect(sess.GetID())
			}
		}
		s.sessionManager.Remove(sess.GetID())
		s.mon.DecOnlinePlayers()
		wsConn.Close()
	}()

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
			packet, err := wsConn.ReadPacket()
			if err != nil {
				return
			}
			s.handlePacket(sess, packet)
		}
	}
}

func (s *GameServer) handlePacket(sess *session.Session, packet *network.Packet) {
	start := time.Now()
	s.mon.IncMessagesReceived()

	switch packet.MsgID {
	case network.MsgTypeHeartbeat:
		sess.Touch()
	case network.MsgTypeJoinLobby:
		s.handleJoinLobby(sess, packet)
	case network.MsgTypeStartGame:
		s.handleStartGame(sess)
	case network.MsgTypePlaceCard:
		s.handlePlaceCard(sess, packet)
	case network.MsgTypeRetryRound:
		s.handleRetryRound(sess)
	case network.MsgTypeContinueGame:
		s.handleContinueGame(sess)
	default:
		logger.Log.Infof("Unknown message type: %d", packet.MsgID)
	}

	s.mon.ObserveMessageLatency(time.Since(start))
}

func (s *GameServer) handleJoinLobby(sess *session.Session, packet *network.Packet) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(packet.Data, &req); err != nil {
		s.sendError(sess, "invalid join payload")
		return
	}

	l := s.lobbyManager.GetOrCreate(defaultLobbyID, s.broadcaster, s.recordService, s.timerManager, s.countdownTicks, s.minPlayers)
	s.mon.SetActiveLobbies(s.lobbyManager.Count())

	if err := l.Join(sess.GetID(), req.Name); err != nil {
		s.sendError(sess, err.Error())
		return
	}
	sess.Name = req.Name
	sess.LobbyID = l.ID
}

func (s *GameServer) handleStartGame(sess *session.Session) {
	l, exists := s.lobbyOf(sess)
	if !exists {
		s.sendError(sess, "join the lobby first")
		return
	}
	if err := l.Start(); err != nil {
		s.sendError(sess, err.Error())
	}
}

func (s *GameServer) handlePlaceCard(sess *session.Session, packet *network.Packet) {
	s.mon.IncPlaceAttempts()

	l, exists := s.lobbyOf(sess)
	if !exists {
		return
	}

	var card deck.Card
	if err := json.Unmarshal(packet.Data, &card); err != nil {
		return
	}
	if !deck.Valid(card) {
		logger.Log.Warnf("Session %s sent an unknown card %q/%q", sess.GetID(), card.Suit, card.Rank)
		return
	}
	l.PlaceCard(sess.GetID(), card)
}

func (s *GameServer) handleRetryRound(sess *session.Session) {
	if l, exists := s.lobbyOf(sess); exists {
		l.Retry()
	}
}

func (s *GameServer) handleContinueGame(sess *session.Session) {
	if l, exists := s.lobbyOf(sess); exists {
		l.Continue()
	}
}

func (s *GameServer) lobbyOf(sess *session.Session) (*lobby.Lobby, bool) {
	if sess.LobbyID == "" {
		return nil, false
	}
	return s.lobbyManager.Get(sess.LobbyID)
}

// sendError emits a transient validation error to one session. Session state
// is untouched; clients let these expire.
func (s *GameServer) sendError(sess *session.Session, message string) {
	data, _ := json.Marshal(map[string]string{"message": message})
	if err := sess.Send(network.MsgTypeError, data); err != nil {
		logger.Log.Warnf("Failed to send error to session %s: %v", sess.GetID(), err)
	}
}
