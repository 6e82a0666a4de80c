package gcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"

	"github.com/edtrack/calendar-backend/internal/logger"
)

// Vision OCRs photographed or scanned calendar images (PNG/JPEG) that the
// PDF pipeline cannot handle.
type Vision interface {
	OCRImageBytes(ctx context.Context, img []byte, mimeType string) (*VisionOCRResult, error)
	Close() error
}

type VisionOCRResult struct {
	Provider    string          `json:"provider"`
	MimeType    string          `json:"mime_type,omitempty"`
	PrimaryText string          `json:"primary_text"`
	Pages       []VisionOCRPage `json:"pages,omitempty"`
	Warnings    []string        `json:"warnings,omitempty"`
}

type VisionOCRPage struct {
	PageNumber int     `json:"page_number"`
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

type visionService struct {
	log          *logger.Logger
	visionClient *vision.ImageAnnotatorClient
}

func NewVision(log *logger.Logger) (Vision, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	slog := log.With("service", "gcp.Vision")

	ctx := context.Background()
	opts := ClientOptionsFromEnv()

	vClient, err := vision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("vision client: %w", err)
	}

	return &visionService{log: slog, visionClient: vClient}, nil
}

func (s *visionService) Close() error {
	if s == nil || s.visionClient == nil {
		return nil
	}
	return s.visionClient.Close()
}

func (s *visionService) OCRImageBytes(ctx context.Context, img []byte, mimeType string) (*VisionOCRResult, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	out := &VisionOCRResult{Provider: "gcp_vision", MimeType: mimeType}
	if len(img) == 0 {
		return out, nil
	}

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: img},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
			},
		},
	}

	resp, err := s.visionClient.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("vision BatchAnnotateImages: %w", err)
	}
	if resp == nil || len(resp.Responses) == 0 {
		return out, nil
	}

	r := resp.Responses[0]
	if r.Error != nil {
		return nil, fmt.Errorf("vision annotate: %s", r.Error.Message)
	}
	ann := r.FullTextAnnotation
	if ann == nil {
		return out, nil
	}

	out.PrimaryText = strings.TrimSpace(ann.Text)
	for i, p := range ann.Pages {
		if p == nil {
			continue
		}
		out.Pages = append(out.Pages, VisionOCRPage{
			PageNumber: i + 1,
			Text:       out.PrimaryText,
			Confidence: float64(p.Confidence),
		})
	}
	return out, nil
}
