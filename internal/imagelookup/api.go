package imagelookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/gymrota/internal/telemetry/tracing"
)

const (
	DefaultBaseURL = "https://wger.de"

	oneHour           = 60 * 60
	lookupCacheExpire = oneHour
	minNameLength     = 3
	maxResponseSize   = 2 * 1024 * 1024
)

type searchResponse struct {
	Suggestions []struct {
		Value string `json:"value"`
		Data  *struct {
			ID    int    `json:"id"`
			Name  string `json:"name"`
			Image string `json:"image"`
		} `json:"data"`
	} `json:"suggestions"`
}

type exerciseImagesResponse struct {
	Results []struct {
		Image string `json:"image"`
	} `json:"results"`
}

// Api finds illustration images for exercises by name.
// Every fault is logged and reported as no image.
type Api struct {
	baseURL    string // https://wger.de
	httpClient *http.Client
	cache      *freecache.Cache
}

func NewApi(baseURL string, httpClient *http.Client) *Api {
	megabyte := 1024 * 1024
	cacheSize := 5 * megabyte

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Api{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		cache:      freecache.NewCache(cacheSize),
	}
}

// Lookup returns the absolute URL of the first search suggestion carrying an image
func (api *Api) Lookup(ctx context.Context, exerciseName string) *string {
	ctx, span := tracing.GlobalTracer.Start(ctx, "imageLookup.lookup")
	defer span.End()

	name := strings.TrimSpace(exerciseName)
	span.SetAttributes(attribute.String("exercise.name", name))
	if len([]rune(name)) < minNameLength {
		return nil
	}

	cacheKey := []byte("search::" + strings.ToLower(name))
	if cached, err := api.cache.Get(cacheKey); err == nil {
		log.Tracef("image lookup: found [%s] in cache", name)
		if len(cached) == 0 {
			return nil
		}
		img := string(cached)
		return &img
	}

	searchURL := fmt.Sprintf("%s/api/v2/exercise/search/?term=%s", api.baseURL, url.QueryEscape(name))
	var resp searchResponse
	if err := api.getJSON(ctx, searchURL, &resp); err != nil {
		log.Errorf("image lookup for [%s]: %s", name, err)
		return nil
	}

	var image string
	firstExerciseID := 0
	for _, s := range resp.Suggestions {
		if s.Data == nil {
			continue
		}
		if firstExerciseID == 0 {
			firstExerciseID = s.Data.ID
		}
		if s.Data.Image != "" {
			image = api.absolute(s.Data.Image)
			break
		}
	}

	// search results only carry the main image, the exercise may still have others
	if image == "" && firstExerciseID > 0 {
		if img := api.ImageForExercise(ctx, firstExerciseID); img != nil {
			image = *img
		}
	}

	// misses are cached as well, the catalog does not change often
	if err := api.cache.Set(cacheKey, []byte(image), lookupCacheExpire); err != nil {
		log.Errorf("image lookup: set cache for [%s]: %s", name, err)
	}

	if image == "" {
		log.Debugf("image lookup: no image for [%s]", name)
		return nil
	}
	return &image
}

// ImageForExercise returns the first image of a catalog exercise
func (api *Api) ImageForExercise(ctx context.Context, exerciseID int) *string {
	ctx, span := tracing.GlobalTracer.Start(ctx, "imageLookup.imageForExercise")
	defer span.End()
	span.SetAttributes(attribute.Int("exercise.id", exerciseID))

	imagesURL := fmt.Sprintf("%s/api/v2/exerciseimage/?exercise=%s&limit=1", api.baseURL, strconv.Itoa(exerciseID))
	var resp exerciseImagesResponse
	if err := api.getJSON(ctx, imagesURL, &resp); err != nil {
		log.Errorf("image for exercise %d: %s", exerciseID, err)
		return nil
	}
	if len(resp.Results) == 0 || resp.Results[0].Image == "" {
		return nil
	}

	image := api.absolute(resp.Results[0].Image)
	return &image
}

func (api *Api) absolute(imagePath string) string {
	if strings.HasPrefix(imagePath, "http://") || strings.HasPrefix(imagePath, "https://") {
		return imagePath
	}
	if !strings.HasPrefix(imagePath, "/") {
		imagePath = "/" + imagePath
	}
	return api.baseURL + imagePath
}

func (api *Api) getJSON(ctx context.Context, reqURL string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	log.Debugf("calling image lookup api: %s", reqURL)
	resp, err := api.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(respBytes, dst); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
