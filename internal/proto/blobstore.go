// Package proto declares the gophsync.v1.BlobStore gRPC service defined in
// gophsync/v1/blobstore.proto.
//
// The service exchanges protobuf well-known types only, so there is no
// message code; the bindings below follow the protoc-gen-go-grpc layout:
//
//	Register(Struct{username, salt, verifier})  -> Empty
//	GetSalt(StringValue username)               -> BytesValue salt
//	Login(Struct{username, verifier})           -> StringValue access token
//	Ping(Empty)                                 -> StringValue "OK"
//	Put(BytesValue blob) + x-object-name header -> Int64Value version
//	Get(StringValue name)                       -> BytesValue blob
//	Delete(StringValue name)                    -> Empty
//	List(Empty)                                 -> ListValue of object structs
//
// Byte fields inside Struct values are base64 (standard encoding).
package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "gophsync.v1.BlobStore"

const (
	BlobStore_Register_FullMethodName = "/" + ServiceName + "/Register"
	BlobStore_GetSalt_FullMethodName  = "/" + ServiceName + "/GetSalt"
	BlobStore_Login_FullMethodName    = "/" + ServiceName + "/Login"
	BlobStore_Ping_FullMethodName     = "/" + ServiceName + "/Ping"
	BlobStore_Put_FullMethodName      = "/" + ServiceName + "/Put"
	BlobStore_Get_FullMethodName      = "/" + ServiceName + "/Get"
	BlobStore_Delete_FullMethodName   = "/" + ServiceName + "/Delete"
	BlobStore_List_FullMethodName     = "/" + ServiceName + "/List"
)

// PingOK is the Ping reply of a healthy server.
const PingOK = "OK"

// MaxMessageSize caps a single gRPC message in either direction. Blobs
// travel in one message, so it bounds the largest object as well.
const MaxMessageSize = 256 << 20

// BlobStoreClient is the client API for the BlobStore service.
type BlobStoreClient interface {
	Register(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error)
	GetSalt(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	Login(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	Put(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error)
	Get(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error)
	Delete(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error)
	List(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error)
}

type blobStoreClient struct {
	cc grpc.ClientConnInterface
}

func NewBlobStoreClient(cc grpc.ClientConnInterface) BlobStoreClient {
	return &blobStoreClient{cc}
}

func (c *blobStoreClient) Register(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, BlobStore_Register_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *blobStoreClient) GetSalt(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, BlobStore_GetSalt_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *blobStoreClient) Login(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, BlobStore_Login_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *blobStoreClient) Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, BlobStore_Ping_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *blobStoreClient) Put(ctx context.Context, in *wrapperspb.BytesValue, opts ...grpc.CallOption) (*wrapperspb.Int64Value, error) {
	out := new(wrapperspb.Int64Value)
	if err := c.cc.Invoke(ctx, BlobStore_Put_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *blobStoreClient) Get(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.BytesValue, error) {
	out := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, BlobStore_Get_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *blobStoreClient) Delete(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	out := new(emptypb.Empty)
	if err := c.cc.Invoke(ctx, BlobStore_Delete_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *blobStoreClient) List(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, BlobStore_List_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// BlobStoreServer is the server API for the BlobStore service. Embed
// UnimplementedBlobStoreServer for forward compatibility.
type BlobStoreServer interface {
	Register(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	GetSalt(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error)
	Login(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error)
	Ping(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
	Put(context.Context, *wrapperspb.BytesValue) (*wrapperspb.Int64Value, error)
	Get(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error)
	Delete(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
	List(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	mustEmbedUnimplementedBlobStoreServer()
}

type UnimplementedBlobStoreServer struct{}

func (UnimplementedBlobStoreServer) Register(context.Context, *structpb.Struct) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedBlobStoreServer) GetSalt(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSalt not implemented")
}
func (UnimplementedBlobStoreServer) Login(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedBlobStoreServer) Ping(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedBlobStoreServer) Put(context.Context, *wrapperspb.BytesValue) (*wrapperspb.Int64Value, error) {
	return nil, status.Error(codes.Unimplemented, "method Put not implemented")
}
func (UnimplementedBlobStoreServer) Get(context.Context, *wrapperspb.StringValue) (*wrapperspb.BytesValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Get not implemented")
}
func (UnimplementedBlobStoreServer) Delete(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method Delete not implemented")
}
func (UnimplementedBlobStoreServer) List(context.Context, *emptypb.Empty) (*structpb.ListValue, error) {
	return nil, status.Error(codes.Unimplemented, "method List not implemented")
}
func (UnimplementedBlobStoreServer) mustEmbedUnimplementedBlobStoreServer() {}

func RegisterBlobStoreServer(s grpc.ServiceRegistrar, srv BlobStoreServer) {
	s.RegisterService(&BlobStore_ServiceDesc, srv)
}

// unary adapts a typed server method to grpc.MethodHandler.
func unary[Req, Resp any](fullMethod string, call func(BlobStoreServer, context.Context, Req) (Resp, error), newReq func() Req) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := newReq()
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(BlobStoreServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(BlobStoreServer), ctx, req.(Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func newStruct() *structpb.Struct        { return new(structpb.Struct) }
func newString() *wrapperspb.StringValue { return new(wrapperspb.StringValue) }
func newBytes() *wrapperspb.BytesValue   { return new(wrapperspb.BytesValue) }
func newEmpty() *emptypb.Empty           { return new(emptypb.Empty) }

var BlobStore_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BlobStoreServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unary(BlobStore_Register_FullMethodName, BlobStoreServer.Register, newStruct)},
		{MethodName: "GetSalt", Handler: unary(BlobStore_GetSalt_FullMethodName, BlobStoreServer.GetSalt, newString)},
		{MethodName: "Login", Handler: unary(BlobStore_Login_FullMethodName, BlobStoreServer.Login, newStruct)},
		{MethodName: "Ping", Handler: unary(BlobStore_Ping_FullMethodName, BlobStoreServer.Ping, newEmpty)},
		{MethodName: "Put", Handler: unary(BlobStore_Put_FullMethodName, BlobStoreServer.Put, newBytes)},
		{MethodName: "Get", Handler: unary(BlobStore_Get_FullMethodName, BlobStoreServer.Get, newString)},
		{MethodName: "Delete", Handler: unary(BlobStore_Delete_FullMethodName, BlobStoreServer.Delete, newString)},
		{MethodName: "List", Handler: unary(BlobStore_List_FullMethodName, BlobStoreServer.List, newEmpty)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "gophsync/v1/blobstore.proto",
}
