package grpc

// proto.go is the hand-written equivalent of generated code for
// underwriting.v1.UnderwritingService. Messages are the application DTOs,
// carried by the JSON codec.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/psspowers/underwriting/internal/application/dto"
)

const serviceName = "underwriting.v1.UnderwritingService"

// Full method names, used by interceptors.
const (
	MethodListSectors       = "/" + serviceName + "/ListSectors"
	MethodListIndustries    = "/" + serviceName + "/ListIndustries"
	MethodListSubIndustries = "/" + serviceName + "/ListSubIndustries"
	MethodLookupSubIndustry = "/" + serviceName + "/LookupSubIndustry"
	MethodClassifyRecord    = "/" + serviceName + "/ClassifyRecord"
	MethodEvaluateScrutiny  = "/" + serviceName + "/EvaluateScrutiny"
	MethodGetAssessment     = "/" + serviceName + "/GetAssessment"
	MethodListAssessments   = "/" + serviceName + "/ListAssessments"
)

// StaffOnlyMethods expose or change underwriting data and are closed to partners.
var StaffOnlyMethods = []string{
	MethodClassifyRecord,
	MethodEvaluateScrutiny,
	MethodGetAssessment,
	MethodListAssessments,
}

// ListSectorsRequest has no fields.
type ListSectorsRequest struct{}

// LookupSubIndustryRequest names one taxonomy leaf.
type LookupSubIndustryRequest struct {
	SubIndustry string `json:"sub_industry"`
}

// UnderwritingServiceServer is the server API for UnderwritingService.
type UnderwritingServiceServer interface {
	ListSectors(context.Context, *ListSectorsRequest) (*dto.SectorsResponse, error)
	ListIndustries(context.Context, *dto.ListIndustriesRequest) (*dto.IndustriesResponse, error)
	ListSubIndustries(context.Context, *dto.ListSubIndustriesRequest) (*dto.SubIndustriesResponse, error)
	LookupSubIndustry(context.Context, *LookupSubIndustryRequest) (*dto.TaxonomyEntry, error)
	ClassifyRecord(context.Context, *dto.ClassifyRecordRequest) (*dto.ClassificationResponse, error)
	EvaluateScrutiny(context.Context, *dto.EvaluateScrutinyRequest) (*dto.AssessmentResponse, error)
	GetAssessment(context.Context, *dto.GetAssessmentRequest) (*dto.AssessmentResponse, error)
	ListAssessments(context.Context, *dto.ListAssessmentsRequest) (*dto.AssessmentListResponse, error)
}

// RegisterUnderwritingServiceServer registers srv with the gRPC server.
func RegisterUnderwritingServiceServer(s grpclib.ServiceRegistrar, srv UnderwritingServiceServer) {
	s.RegisterService(&underwritingServiceDesc, srv)
}

var underwritingServiceDesc = grpclib.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*UnderwritingServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "ListSectors", Handler: unaryHandler(MethodListSectors, UnderwritingServiceServer.ListSectors)},
		{MethodName: "ListIndustries", Handler: unaryHandler(MethodListIndustries, UnderwritingServiceServer.ListIndustries)},
		{MethodName: "ListSubIndustries", Handler: unaryHandler(MethodListSubIndustries, UnderwritingServiceServer.ListSubIndustries)},
		{MethodName: "LookupSubIndustry", Handler: unaryHandler(MethodLookupSubIndustry, UnderwritingServiceServer.LookupSubIndustry)},
		{MethodName: "ClassifyRecord", Handler: unaryHandler(MethodClassifyRecord, UnderwritingServiceServer.ClassifyRecord)},
		{MethodName: "EvaluateScrutiny", Handler: unaryHandler(MethodEvaluateScrutiny, UnderwritingServiceServer.EvaluateScrutiny)},
		{MethodName: "GetAssessment", Handler: unaryHandler(MethodGetAssessment, UnderwritingServiceServer.GetAssessment)},
		{MethodName: "ListAssessments", Handler: unaryHandler(MethodListAssessments, UnderwritingServiceServer.ListAssessments)},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "underwriting/v1/underwriting.proto",
}

// unaryHandler adapts a typed server method to grpc.MethodDesc, the same
// shape protoc-gen-go-grpc emits per method.
func unaryHandler[Req, Resp any](
	fullMethod string,
	call func(UnderwritingServiceServer, context.Context, *Req) (*Resp, error),
) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "decode request: %v", err)
		}
		if interceptor == nil {
			return call(srv.(UnderwritingServiceServer), ctx, in)
		}
		info := &grpclib.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(UnderwritingServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}
