package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

const (
	PluginMapKey      = "sampler"
	serviceName       = "gocycling.sampler.v1.DistanceSampler"
	jsonCodecName     = "json"
	methodGetMetadata = "/" + serviceName + "/GetMetadata"
	methodReset       = "/" + serviceName + "/Reset"
	methodDistance    = "/" + serviceName + "/Distance"
)

var HandshakeConfig = plugin.HandshakeConfig{
	ProtocolVersion:  1,
	MagicCookieKey:   "GOCYCLING_SAMPLER",
	MagicCookieValue: "gocycling",
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string {
	return jsonCodecName
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type Empty struct{}

type Metadata struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type ResetRequest struct {
	RideID string `json:"ride_id"`
}

type DistanceRequest struct {
	RideID         string  `json:"ride_id"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
}

type DistanceReply struct {
	Meters float64 `json:"meters"`
}

type SamplerServer interface {
	GetMetadata(ctx context.Context, in *Empty) (*Metadata, error)
	Reset(ctx context.Context, in *ResetRequest) (*Empty, error)
	Distance(ctx context.Context, in *DistanceRequest) (*DistanceReply, error)
}

type SamplerClient interface {
	GetMetadata(ctx context.Context) (*Metadata, error)
	Reset(ctx context.Context, in *ResetRequest) error
	Distance(ctx context.Context, in *DistanceRequest) (*DistanceReply, error)
}

type samplerClient struct {
	conn *grpc.ClientConn
}

func NewSamplerClient(conn *grpc.ClientConn) SamplerClient {
	return &samplerClient{conn: conn}
}

func (c *samplerClient) GetMetadata(ctx context.Context) (*Metadata, error) {
	out := &Metadata{}
	if err := c.conn.Invoke(ctx, methodGetMetadata, &Empty{}, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *samplerClient) Reset(ctx context.Context, in *ResetRequest) error {
	return c.conn.Invoke(ctx, methodReset, in, &Empty{}, grpc.CallContentSubtype(jsonCodecName))
}

func (c *samplerClient) Distance(ctx context.Context, in *DistanceRequest) (*DistanceReply, error) {
	out := &DistanceReply{}
	if err := c.conn.Invoke(ctx, methodDistance, in, out, grpc.CallContentSubtype(jsonCodecName)); err != nil {
		return nil, err
	}
	return out, nil
}

// unary builds a method handler that decodes Req and dispatches to call.
func unary[Req any](fullMethod string, call func(context.Context, *Req) (any, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			typed, ok := req.(*Req)
			if !ok {
				return nil, fmt.Errorf("invalid request type")
			}
			return call(ctx, typed)
		}
		return interceptor(ctx, in, info, handler)
	}
}

func RegisterSamplerServer(server grpc.ServiceRegistrar, impl SamplerServer) {
	server.RegisterService(&grpc.ServiceDesc{
		ServiceName: serviceName,
		HandlerType: (*SamplerServer)(nil),
		Methods: []grpc.MethodDesc{
			{
				MethodName: "GetMetadata",
				Handler: unary(methodGetMetadata, func(ctx context.Context, in *Empty) (any, error) {
					return impl.GetMetadata(ctx, in)
				}),
			},
			{
				MethodName: "Reset",
				Handler: unary(methodReset, func(ctx context.Context, in *ResetRequest) (any, error) {
					return impl.Reset(ctx, in)
				}),
			},
			{
				MethodName: "Distance",
				Handler: unary(methodDistance, func(ctx context.Context, in *DistanceRequest) (any, error) {
					return impl.Distance(ctx, in)
				}),
			},
		},
		Streams:  []grpc.StreamDesc{},
		Metadata: "sampler-rpc-v1",
	}, impl)
}

type GRPCPlugin struct {
	plugin.NetRPCUnsupportedPlugin
	Impl SamplerServer
}

func (p *GRPCPlugin) GRPCServer(_ *plugin.GRPCBroker, server *grpc.Server) error {
	RegisterSamplerServer(server, p.Impl)
	return nil
}

func (p *GRPCPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, conn *grpc.ClientConn) (any, error) {
	return NewSamplerClient(conn), nil
}

func PluginMap(impl SamplerServer) map[string]plugin.Plugin {
	return map[string]plugin.Plugin{
		PluginMapKey: &GRPCPlugin{Impl: impl},
	}
}
