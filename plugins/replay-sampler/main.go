package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	samplerrpc "gocycling/internal/modules/ride/adapter/out/rpc"
)

const defaultSpeedMPS = 5.5

// server replays a constant cruising speed over the ride's moving time.
type server struct {
	speed  float64
	logger hclog.Logger
}

func (s *server) GetMetadata(context.Context, *samplerrpc.Empty) (*samplerrpc.Metadata, error) {
	return &samplerrpc.Metadata{Name: "replay", Version: "1.0.0"}, nil
}

func (s *server) Reset(_ context.Context, in *samplerrpc.ResetRequest) (*samplerrpc.Empty, error) {
	s.logger.Debug("reset", "ride_id", in.RideID)
	return &samplerrpc.Empty{}, nil
}

func (s *server) Distance(_ context.Context, in *samplerrpc.DistanceRequest) (*samplerrpc.DistanceReply, error) {
	if in.ElapsedSeconds < 0 {
		return nil, fmt.Errorf("elapsed seconds must be non-negative")
	}
	return &samplerrpc.DistanceReply{Meters: s.speed * in.ElapsedSeconds}, nil
}

func speedFromEnv() float64 {
	raw := os.Getenv("REPLAY_SPEED_MPS")
	if raw == "" {
		return defaultSpeedMPS
	}
	speed, err := strconv.ParseFloat(raw, 64)
	if err != nil || speed < 0 {
		return defaultSpeedMPS
	}
	return speed
}

func main() {
	logger := hclog.New(&hclog.LoggerOptions{Name: "replay-sampler", Output: os.Stderr, JSONFormat: true})
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: samplerrpc.HandshakeConfig,
		Plugins:         samplerrpc.PluginMap(&server{speed: speedFromEnv(), logger: logger}),
		GRPCServer:      plugin.DefaultGRPCServer,
		Logger:          logger,
	})
}
