// Package tracing 提供基于OpenTelemetry的链路追踪
//
// # 核心概念
//
// 1. **Trace（追踪）**：一个完整的请求链路
//   - 示例：创建图书并生成AI摘要的全过程
//   - 包含多个Span
//
// 2. **Span（跨度）**：一个操作单元
//   - 示例：调用模型服务生成摘要
//   - 包含：操作名称、开始时间、结束时间、耗时、状态
//
// 3. **SpanContext（上下文）**：随context.Context传递的元数据
//   - TraceID：标识整个请求链路
//   - SpanID：标识当前操作
//
// # 追踪示例
//
//	Trace: POST /api/v1/books?generate_summary=true
//	├─ Span1: CreateBook（耗时1210ms）
//	│  ├─ Span2: 数据库事务（耗时8ms）
//	│  └─ Span3: llm.Generate（耗时1200ms）← 慢！
//
// # 使用示例
//
//	// 1. 初始化全局Tracer Provider（tracing.enabled=true时）
//	shutdown, err := tracing.InitTracer("bookshelf", "localhost:4317")
//	if err != nil {
//	    return err
//	}
//	defer shutdown(context.Background())
//
//	// 2. 在业务代码中创建Span
//	ctx, span := tracing.StartSpan(ctx, "bookshelf/llm", "llm.Generate")
//	defer func() { tracing.EndSpan(span, err) }()
//
// 未调用InitTracer时otel使用No-op Provider，StartSpan开销可以忽略。
package tracing

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

// InitTracer 初始化全局Tracer Provider
//
// 参数：
// - serviceName: 服务名称（Jaeger UI中的Service）
// - endpoint: OTLP gRPC端点（host:port，不含协议）
//
// 返回的shutdown必须在程序退出前调用，否则可能丢失最后一批Span。
func InitTracer(serviceName, endpoint string) (func(context.Context) error, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 1. 创建OTLP gRPC Exporter（默认端口4317）
	// 连接是懒建立的，Collector不可用时不会阻塞启动
	exporter, err := otlptracegrpc.New(
		ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("创建OTLP exporter失败: %w", err)
	}

	// 2. 创建Resource（附加到所有Span上的服务属性）
	res, err := resource.New(
		ctx,
		resource.WithAttributes(semconv.ServiceName(serviceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("创建资源属性失败: %w", err)
	}

	// 3. 创建Tracer Provider
	// BatchSpanProcessor批量发送Span（默认每5秒或512个Span发送一次）
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	// 4. 设置全局TracerProvider和上下文传播器（W3C Trace Context + Baggage）
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	// 5. 返回关闭函数，最多等待5秒刷新剩余Span
	shutdown := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return tp.Shutdown(ctx)
	}

	return shutdown, nil
}

// StartSpan 创建Span
// 如果ctx包含父Span，新Span会自动成为子Span
func StartSpan(ctx context.Context, tracerName, spanName string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, spanName)
}

// EndSpan 根据err设置Span状态并结束Span
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// ExtractTraceID 从Context提取TraceID（用于日志关联）
func ExtractTraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().TraceID().String()
}

// ExtractSpanID 从Context提取SpanID
func ExtractSpanID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.SpanContext().IsValid() {
		return ""
	}
	return span.SpanContext().SpanID().String()
}
