package manager

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/travigo/caltrain/pkg/dataaggregator/source/cachedresults"
	"github.com/travigo/caltrain/pkg/database"
	"github.com/travigo/caltrain/pkg/dataimporter/datasets"
	"github.com/travigo/caltrain/pkg/dataimporter/formats"
	"github.com/travigo/caltrain/pkg/dataimporter/formats/caltrain"
	"github.com/travigo/caltrain/pkg/redis_client"
	"golang.org/x/net/html/charset"
)

// DefaultDataset is imported when no dataset is named.
const DefaultDataset = "us-caltrain-timetable"

const downloadAttempts = 4

var newDownloadBackOff = func() backoff.BackOff {
	return backoff.WithMaxRetries(backoff.NewExponentialBackOff(), downloadAttempts)
}

func GetDataset(identifier string) (datasets.DataSet, error) {
	registered, err := GetRegisteredDataSets()
	if err != nil {
		return datasets.DataSet{}, err
	}

	for _, dataset := range registered {
		if dataset.Identifier == identifier {
			return dataset, nil
		}
	}

	return datasets.DataSet{}, fmt.Errorf("dataset %s could not be found", identifier)
}

// ImportDataset loads the dataset into store unless a schedule is already present. With force
// set an existing schedule is replaced once the new one has been extracted.
func ImportDataset(ctx context.Context, dataset *datasets.DataSet, store database.ScheduleStore, force bool) error {
	exists, err := store.HasSchedule(ctx)
	if err != nil {
		return err
	}

	if exists && !force {
		log.Info().Str("id", dataset.Identifier).Msg("Schedule already imported")
		return nil
	}

	if err := dataset.Validate(); err != nil {
		return err
	}

	log.Info().
		Str("id", dataset.Identifier).
		Str("datasource", dataset.DataSourceRef).
		Str("source", dataset.Source).
		Msg("Importing dataset")

	var format formats.Format

	switch dataset.Format {
	case datasets.DataSetFormatCaltrainHTMLTimetable:
		format = &caltrain.Timetable{Tables: dataset.Tables}
	default:
		return fmt.Errorf("unrecognised format %s", dataset.Format)
	}

	source := dataset.Source
	contentType := ""
	if isValidUrl(dataset.Source) {
		tempFile, downloadedContentType, err := tempDownloadFile(ctx, dataset.Source)
		if err != nil {
			return err
		}
		tempFile.Close()
		defer os.Remove(tempFile.Name())

		source = tempFile.Name()
		contentType = downloadedContentType
	}

	file, err := os.Open(source)
	if err != nil {
		return err
	}
	defer file.Close()

	reader, err := charset.NewReader(file, contentType)
	if err != nil {
		return fmt.Errorf("detecting document encoding: %w", err)
	}

	if err := format.ParseFile(reader); err != nil {
		return err
	}

	if exists {
		log.Info().Str("id", dataset.Identifier).Msg("Replacing existing schedule")
	}

	if err := format.Import(ctx, store, exists); err != nil {
		return err
	}

	invalidateCachedResults(ctx, dataset, store)

	return nil
}

// invalidateCachedResults drops lookup results cached against an earlier import into store.
func invalidateCachedResults(ctx context.Context, dataset *datasets.DataSet, store database.ScheduleStore) {
	if redis_client.Client == nil {
		return
	}

	resultsCache := cachedresults.Cache{Namespace: cachedresults.Namespace(dataset.Identifier, store.Identity())}
	resultsCache.Setup(redis_client.Client)

	if err := resultsCache.Invalidate(ctx); err != nil {
		log.Error().Err(err).Str("namespace", resultsCache.Namespace).Msg("Failed to invalidate cached results")
	}
}

func isValidUrl(toTest string) bool {
	_, err := url.ParseRequestURI(toTest)
	if err != nil {
		return false
	}

	u, err := url.Parse(toTest)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}

// tempDownloadFile fetches source into a temporary file, retrying transport errors and server
// errors. The caller removes the file.
func tempDownloadFile(ctx context.Context, source string) (*os.File, string, error) {
	client := &http.Client{Timeout: 60 * time.Second}

	download := func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", "caltrain-data-importer")

		resp, err := client.Do(req)
		if err != nil {
			log.Warn().Err(err).Str("source", source).Msg("Download failed")
			return nil, err
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			resp.Body.Close()
			log.Warn().Int("status", resp.StatusCode).Str("source", source).Msg("Download failed")
			return nil, fmt.Errorf("downloading %s: %s", source, resp.Status)
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, backoff.Permanent(fmt.Errorf("downloading %s: %s", source, resp.Status))
		}

		return resp, nil
	}

	resp, err := backoff.RetryWithData(download, backoff.WithContext(newDownloadBackOff(), ctx))
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	tmpFile, err := os.CreateTemp(os.TempDir(), "caltrain-data-importer-")
	if err != nil {
		return nil, "", fmt.Errorf("creating temporary file: %w", err)
	}

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
		return nil, "", fmt.Errorf("downloading %s: %w", source, err)
	}

	return tmpFile, resp.Header.Get("Content-Type"), nil
}
