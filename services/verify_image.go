package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Nguyeniris123/JobApp/models"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// trustedKeywords are the content labels treated as evidence of a genuine
// workplace photo.
var trustedKeywords = []string{"office", "workspace", "building", "desk", "employee"}

// ClassifyResult is the outcome of one image classification: whether the
// image already appears elsewhere on the internet, and the semantic labels
// describing its content.
type ClassifyResult struct {
	WebMatches bool
	Labels     []string
}

// VisionClassifier is the external classification collaborator.
type VisionClassifier interface {
	Classify(ctx context.Context, image []byte) (*ClassifyResult, error)
}

// MatchTrustedKeywords returns the trusted keywords present among the labels
// (case-insensitive).
func MatchTrustedKeywords(labels []string) []string {
	var matched []string
	for _, label := range labels {
		label = strings.ToLower(label)
		if slices.Contains(trustedKeywords, label) && !slices.Contains(matched, label) {
			matched = append(matched, label)
		}
	}
	return matched
}

// Verdict applies the trust decision table to a classification result.
func Verdict(webMatches bool, labels []string) (bool, string) {
	matched := MatchTrustedKeywords(labels)

	if webMatches && len(matched) == 0 {
		return false, "image found elsewhere online, no trusted content"
	}
	if webMatches {
		return true, fmt.Sprintf("image found online, but contains trusted content: %s", strings.Join(matched, ", "))
	}
	if len(matched) > 0 {
		return true, fmt.Sprintf("new image, trusted content detected: %s", strings.Join(matched, ", "))
	}
	return false, "no trusted content detected"
}

// ImageVerifier runs the company-image trust pipeline.
type ImageVerifier struct {
	Classifier VisionClassifier
	HTTPClient *http.Client
}

func NewImageVerifier(classifier VisionClassifier) *ImageVerifier {
	return &ImageVerifier{
		Classifier: classifier,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// VerifyCompanyImage downloads the stored image, classifies it and, on an
// accepting verdict, flips the owning company's IsVerified flag to true.
// The flag is never reset to false here. Any failure leaves the company
// unverified; the image upload itself has already succeeded.
func (v *ImageVerifier) VerifyCompanyImage(db *gorm.DB, image *models.CompanyImage) {
	content, err := v.fetchImage(image.URL)
	if err != nil {
		log.Printf("image verification: could not fetch image %d: %v", image.ID, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := v.Classifier.Classify(ctx, content)
	if err != nil {
		log.Printf("image verification: classification failed for image %d: %v", image.ID, err)
		return
	}

	accepted, reason := Verdict(result.WebMatches, result.Labels)
	log.Printf("image verification: image %d (company %d): accepted=%v (%s)",
		image.ID, image.CompanyID, accepted, reason)

	if !accepted {
		return
	}

	// Single conditional update keeps the flag monotonic and avoids holding
	// any lock on the company row beyond this statement.
	if err := db.Model(&models.Company{}).
		Where("id = ? AND is_verified = ?", image.CompanyID, false).
		Update("is_verified", true).Error; err != nil {
		log.Printf("image verification: could not mark company %d verified: %v", image.CompanyID, err)
	}
}

func (v *ImageVerifier) fetchImage(url string) ([]byte, error) {
	res, err := v.HTTPClient.Get(url)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching image", res.StatusCode)
	}

	return io.ReadAll(res.Body)
}

// GoogleVisionClassifier calls the Google Vision REST API with an API key
// from VISION_API_KEY.
type GoogleVisionClassifier struct {
	HTTPClient *http.Client
	Endpoint   string
}

func NewGoogleVisionClassifier() *GoogleVisionClassifier {
	return &GoogleVisionClassifier{
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		Endpoint:   "https://vision.googleapis.com/v1/images:annotate",
	}
}

func (c *GoogleVisionClassifier) Classify(ctx context.Context, image []byte) (*ClassifyResult, error) {
	apiKey := os.Getenv("VISION_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("VISION_API_KEY environment variable is required")
	}

	reqBody := map[string]interface{}{
		"requests": []map[string]interface{}{
			{
				"image": map[string]string{
					"content": base64.StdEncoding.EncodeToString(image),
				},
				"features": []map[string]interface{}{
					{"type": "WEB_DETECTION"},
					{"type": "LABEL_DETECTION", "maxResults": 15},
				},
			},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint+"?key="+apiKey, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("vision API returned status %d: %s", res.StatusCode, string(body))
	}

	var visionRes struct {
		Responses []struct {
			WebDetection struct {
				FullMatchingImages []struct {
					URL string `json:"url"`
				} `json:"fullMatchingImages"`
				PagesWithMatchingImages []struct {
					URL string `json:"url"`
				} `json:"pagesWithMatchingImages"`
			} `json:"webDetection"`
			LabelAnnotations []struct {
				Description string `json:"description"`
			} `json:"labelAnnotations"`
		} `json:"responses"`
	}

	if err := json.Unmarshal(body, &visionRes); err != nil {
		return nil, err
	}
	if len(visionRes.Responses) == 0 {
		return nil, fmt.Errorf("vision API returned no responses")
	}

	r := visionRes.Responses[0]
	result := &ClassifyResult{
		WebMatches: len(r.WebDetection.FullMatchingImages) > 0 || len(r.WebDetection.PagesWithMatchingImages) > 0,
	}
	for _, label := range r.LabelAnnotations {
		result.Labels = append(result.Labels, strings.ToLower(label.Description))
	}

	return result, nil
}
