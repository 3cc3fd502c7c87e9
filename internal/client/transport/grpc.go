// Package transport implements the client side of the BlobStore gRPC
// service: the storage.Transport consumed by storage.Client, and the account
// calls used by the login flow.
package transport

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophsync/internal/client/storage"
	"github.com/dmitrijs2005/gophsync/internal/common"
	pb "github.com/dmitrijs2005/gophsync/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// DefaultRequestTimeout bounds calls whose context carries no deadline.
const DefaultRequestTimeout = 15 * time.Second

type GRPCTransport struct {
	endpointURL    string
	conn           *grpc.ClientConn
	client         pb.BlobStoreClient
	requestTimeout time.Duration
	dialOptions    []grpc.DialOption
}

var _ storage.Transport = (*GRPCTransport)(nil)

type Option func(*GRPCTransport)

// WithRequestTimeout overrides DefaultRequestTimeout. Zero disables it.
func WithRequestTimeout(d time.Duration) Option {
	return func(t *GRPCTransport) { t.requestTimeout = d }
}

// WithDialOptions appends gRPC dial options, e.g. a custom dialer in tests.
func WithDialOptions(opts ...grpc.DialOption) Option {
	return func(t *GRPCTransport) { t.dialOptions = append(t.dialOptions, opts...) }
}

// New creates a lazily connecting client for endpointURL.
func New(endpointURL string, opts ...Option) (*GRPCTransport, error) {
	t := &GRPCTransport{endpointURL: endpointURL, requestTimeout: DefaultRequestTimeout}
	for _, opt := range opts {
		opt(t)
	}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(t.unaryInterceptor),
		grpc.WithDefaultCallOptions(
			grpc.MaxCallRecvMsgSize(pb.MaxMessageSize),
			grpc.MaxCallSendMsgSize(pb.MaxMessageSize),
		),
	}, t.dialOptions...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("grpc client %s: %w", endpointURL, err)
	}

	t.conn = conn
	t.client = pb.NewBlobStoreClient(conn)
	return t, nil
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

// unaryInterceptor applies the default deadline and maps status errors onto
// the storage error family.
func (t *GRPCTransport) unaryInterceptor(
	ctx context.Context,
	method string,
	req, reply any,
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	if _, ok := ctx.Deadline(); !ok && t.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.requestTimeout)
		defer cancel()
	}

	return mapError(invoker(ctx, method, req, reply, cc, opts...))
}

func (t *GRPCTransport) Close() error {
	return t.conn.Close()
}

func (t *GRPCTransport) Ping(ctx context.Context) error {
	resp, err := t.client.Ping(ctx, &emptypb.Empty{})
	if err != nil {
		return err
	}

	if resp.GetValue() != pb.PingOK {
		return fmt.Errorf("%w: ping status %q", storage.ErrUnavailable, resp.GetValue())
	}

	return nil
}

func (t *GRPCTransport) Register(ctx context.Context, username string, salt, verifier []byte) error {
	req := pb.Credentials{Username: username, Salt: salt, Verifier: verifier}.Struct()

	_, err := t.client.Register(ctx, req)
	return err
}

func (t *GRPCTransport) GetSalt(ctx context.Context, username string) ([]byte, error) {
	resp, err := t.client.GetSalt(ctx, wrapperspb.String(username))
	if err != nil {
		return nil, err
	}
	return resp.GetValue(), nil
}

// Login exchanges the verifier for an access token.
func (t *GRPCTransport) Login(ctx context.Context, username string, verifier []byte) (string, error) {
	req := pb.Credentials{Username: username, Verifier: verifier}.Struct()

	resp, err := t.client.Login(ctx, req)
	if err != nil {
		return "", err
	}
	return resp.GetValue(), nil
}

func (t *GRPCTransport) Put(ctx context.Context, token, name string, blob []byte) (int64, error) {
	ctx = withAccessToken(ctx, token)
	ctx = metadata.AppendToOutgoingContext(ctx, common.ObjectNameHeaderName, name)

	resp, err := t.client.Put(ctx, wrapperspb.Bytes(blob))
	if err != nil {
		return 0, err
	}
	return resp.GetValue(), nil
}

func (t *GRPCTransport) Get(ctx context.Context, token, name string) ([]byte, error) {
	resp, err := t.client.Get(withAccessToken(ctx, token), wrapperspb.String(name))
	if err != nil {
		return nil, err
	}
	return resp.GetValue(), nil
}

func (t *GRPCTransport) Delete(ctx context.Context, token, name string) error {
	_, err := t.client.Delete(withAccessToken(ctx, token), wrapperspb.String(name))
	return err
}

func (t *GRPCTransport) List(ctx context.Context, token string) ([]storage.ObjectInfo, error) {
	resp, err := t.client.List(withAccessToken(ctx, token), &emptypb.Empty{})
	if err != nil {
		return nil, err
	}

	entries, err := pb.DecodeObjects(resp)
	if err != nil {
		return nil, err
	}

	out := make([]storage.ObjectInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, storage.ObjectInfo{Name: e.Name, Size: e.Size, Version: e.Version, UpdatedAt: e.UpdatedAt})
	}
	return out, nil
}
