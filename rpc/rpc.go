package rpc

import (
	"net"
	"net/rpc"

	"github.com/warithr621/game-theory/lobby"
	"github.com/warithr621/game-theory/logger"
	"github.com/warithr621/game-theory/models"
	"github.com/warithr621/game-theory/services"
)

// Server manages the ops RPC listener.
type Server struct {
	listener net.Listener
	address  string
}

func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

// Stop closes the RPC listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// OpsService exposes operational queries over net/rpc: recorded player
// stats and live lobby snapshots.
type OpsService struct {
	records *services.RecordService
	lobbies *lobby.Manager
}

func NewOpsService(records *services.RecordService, lobbies *lobby.Manager) *OpsService {
	return &OpsService{records: records, lobbies: lobbies}
}

type PlayerStatsArgs struct {
	Name string
}

type PlayerStatsReply struct {
	Stats *models.PlayerStats
}

func (s *OpsService) GetPlayerStats(args *PlayerStatsArgs, reply *PlayerStatsReply) error {
	stats, err := s.records.PlayerStats(args.Name)
	if err != nil {
		return err
	}
	reply.Stats = stats
	return nil
}

type LobbyStateArgs struct {
	LobbyID string
}

type LobbyStateReply struct {
	Found bool
	State lobby.StateView
}

// GetLobbyState returns the fully hidden snapshot of a live lobby (no hands
// revealed).
func (s *OpsService) GetLobbyState(args *LobbyStateArgs, reply *LobbyStateReply) error {
	l, exists := s.lobbies.Get(args.LobbyID)
	if !exists {
		reply.Found = false
		return nil
	}
	reply.Found = true
	reply.State = l.Snapshot()
	return nil
}
