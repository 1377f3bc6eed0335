package vision

import (
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	pb "github.com/nikitosikvn1/intelligent-image-analyzer/gen/go/vision"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/apperrors"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/logger"
)

// Captioner is the gateway-side surface of the vision service. Declared as
// an interface so handlers can be tested against a stub.
type Captioner interface {
	Process(ctx context.Context, model string, image []byte) (string, *apperrors.AppError)
	ProcessBatch(ctx context.Context, model string, images [][]byte) ([]string, *apperrors.AppError)
}

// Client wraps the ComputerVision gRPC client. Single images go over the
// unary RPC, multi-image requests over the bidirectional stream with reply
// order matching send order.
type Client struct {
	conn *grpc.ClientConn
	cv   pb.ComputerVisionClient
}

// Dial connects to the vision service at addr. The connection is lazy; a
// down backend surfaces on the first call, not here.
func Dial(addr string) (*Client, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to dial vision service: %w", err)
	}
	return &Client{conn: conn, cv: pb.NewComputerVisionClient(conn)}, nil
}

// Close tears down the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// ParseModel maps the request's model field to the proto enum. An empty
// value selects the full-precision model.
func ParseModel(name string) (pb.ModelType, *apperrors.AppError) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "blip":
		return pb.ModelType_BLIP, nil
	case "blip_quantized", "blip-quantized":
		return pb.ModelType_BLIP_QUANTIZED, nil
	default:
		return 0, apperrors.NewValidation(fmt.Sprintf("Unknown model %q", name))
	}
}

// Process captions a single image over the unary RPC.
func (c *Client) Process(ctx context.Context, model string, image []byte) (string, *apperrors.AppError) {
	mt, appErr := ParseModel(model)
	if appErr != nil {
		return "", appErr
	}
	if len(image) == 0 {
		return "", apperrors.NewValidation("Image payload is empty")
	}

	resp, err := c.cv.ProcessImage(ctx, &pb.ImgProcRequest{Image: image, Model: mt})
	if err != nil {
		log := logger.WithComponent("vision_client")
		log.Error().Err(err).Msg("unary image processing failed")
		return "", apperrors.NewUpstream("vision service unavailable")
	}
	return resp.GetDescription(), nil
}

// ProcessBatch captions images over the bidirectional stream. All requests
// are sent before replies are collected; the backend preserves order, so the
// i-th description belongs to the i-th image.
func (c *Client) ProcessBatch(ctx context.Context, model string, images [][]byte) ([]string, *apperrors.AppError) {
	mt, appErr := ParseModel(model)
	if appErr != nil {
		return nil, appErr
	}
	for i, img := range images {
		if len(img) == 0 {
			return nil, apperrors.NewValidation(fmt.Sprintf("Image payload %d is empty", i))
		}
	}

	log := logger.WithComponent("vision_client")

	stream, err := c.cv.ProcessImageBatch(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to open batch stream")
		return nil, apperrors.NewUpstream("vision service unavailable")
	}

	for _, img := range images {
		if err := stream.Send(&pb.ImgProcRequest{Image: img, Model: mt}); err != nil {
			log.Error().Err(err).Msg("failed to send batch item")
			return nil, apperrors.NewUpstream("vision service unavailable")
		}
	}
	if err := stream.CloseSend(); err != nil {
		log.Error().Err(err).Msg("failed to close send side")
		return nil, apperrors.NewUpstream("vision service unavailable")
	}

	descriptions := make([]string, 0, len(images))
	for {
		resp, err := stream.Recv()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Error().Err(err).Msg("batch stream failed")
			return nil, apperrors.NewUpstream("vision service unavailable")
		}
		descriptions = append(descriptions, resp.GetDescription())
	}

	if len(descriptions) != len(images) {
		log.Error().Int("sent", len(images)).Int("received", len(descriptions)).Msg("batch reply count mismatch")
		return nil, apperrors.NewUpstream("vision service returned an incomplete batch")
	}
	return descriptions, nil
}
