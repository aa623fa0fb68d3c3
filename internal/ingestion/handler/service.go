package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "omnipos.intake.v1.IntakeJobService"

// IntakeJobServiceServer takes the job id as a StringValue and answers with the run summary.
type IntakeJobServiceServer interface {
	RunInventoryIntakeJob(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	RunSalesIntakeJob(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
}

var IntakeJobServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*IntakeJobServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "RunInventoryIntakeJob", Handler: unaryHandler("RunInventoryIntakeJob", IntakeJobServiceServer.RunInventoryIntakeJob)},
		{MethodName: "RunSalesIntakeJob", Handler: unaryHandler("RunSalesIntakeJob", IntakeJobServiceServer.RunSalesIntakeJob)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "omnipos/intake/v1/intake.proto",
}

func RegisterIntakeJobServiceServer(s grpc.ServiceRegistrar, srv IntakeJobServiceServer) {
	s.RegisterService(&IntakeJobServiceDesc, srv)
}

type unaryMethod func(IntakeJobServiceServer, context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)

func unaryHandler(name string, call unaryMethod) grpc.MethodHandler {
	fullMethod := "/" + ServiceName + "/" + name
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(wrapperspb.StringValue)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(IntakeJobServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return call(srv.(IntakeJobServiceServer), ctx, req.(*wrapperspb.StringValue))
		})
	}
}
