package out

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	samplerrpc "gocycling/internal/modules/ride/adapter/out/rpc"
	"gocycling/internal/modules/ride/domain"
	rideout "gocycling/internal/modules/ride/port/out"
	apperrors "gocycling/internal/platform/errors"
	"gocycling/internal/platform/logging"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

var ErrChecksumMismatch = errors.New("sampler checksum mismatch")

// PluginSampler asks an external go-plugin process for distance. The plugin
// is launched per call, so it must not rely on in-process state.
type PluginSampler struct {
	binary string
	sha256 string
	logger hclog.Logger
}

func NewPluginSampler(binary, checksum string, logger hclog.Logger) rideout.DistanceSampler {
	return &PluginSampler{binary: binary, sha256: strings.ToLower(strings.TrimSpace(checksum)), logger: logging.OrDiscard(logger)}
}

func (s *PluginSampler) Describe(ctx context.Context) (domain.SamplerInfo, error) {
	client, closeFn, err := s.connect(ctx)
	if err != nil {
		return domain.SamplerInfo{}, err
	}
	defer closeFn()

	callCtx, cancel := callContext(ctx)
	defer cancel()
	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return domain.SamplerInfo{}, fmt.Errorf("get sampler metadata: %w", err)
	}
	return domain.SamplerInfo{Name: meta.Name, Version: meta.Version}, nil
}

func (s *PluginSampler) Reset(ctx context.Context, rideID string) error {
	client, closeFn, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	callCtx, cancel := callContext(ctx)
	defer cancel()
	if err := client.Reset(callCtx, &samplerrpc.ResetRequest{RideID: rideID}); err != nil {
		return fmt.Errorf("reset sampler: %w", err)
	}
	return nil
}

func (s *PluginSampler) Add(context.Context, domain.Sample) error {
	return fmt.Errorf("%w: sampler plugin %s measures distance itself", apperrors.ErrInvalidInput, filepath.Base(s.binary))
}

func (s *PluginSampler) Distance(ctx context.Context, progress domain.Progress) (float64, error) {
	client, closeFn, err := s.connect(ctx)
	if err != nil {
		return 0, err
	}
	defer closeFn()

	callCtx, cancel := callContext(ctx)
	defer cancel()
	reply, err := client.Distance(callCtx, &samplerrpc.DistanceRequest{RideID: progress.RideID, ElapsedSeconds: progress.Elapsed.Seconds()})
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return 0, fmt.Errorf("sampler timed out: %w", err)
		}
		return 0, fmt.Errorf("sampler distance: %w", err)
	}
	if reply.Meters < 0 {
		return 0, fmt.Errorf("sampler reported negative distance %.2f", reply.Meters)
	}
	return reply.Meters, nil
}

func (s *PluginSampler) connect(ctx context.Context) (samplerrpc.SamplerClient, func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if err := verifyChecksum(s.binary, s.sha256); err != nil {
		return nil, nil, err
	}
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  samplerrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          samplerrpc.PluginMap(nil),
		Cmd:              exec.Command(s.binary),
		Managed:          true,
		StartTimeout:     defaultStartTimeout,
		Logger:           s.logger.Named("plugin"),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("start sampler plugin: %w", err)
	}
	raw, err := rpcClient.Dispense(samplerrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("dispense sampler plugin: %w", err)
	}
	typed, ok := raw.(samplerrpc.SamplerClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("sampler rpc client type mismatch")
	}
	return typed, closeFn, nil
}

func verifyChecksum(path, expected string) error {
	if expected == "" {
		return nil
	}
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read sampler binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	if hex.EncodeToString(hash[:]) != expected {
		return fmt.Errorf("%w: %s", ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func callContext(parent context.Context) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, defaultCallTimeout)
}
