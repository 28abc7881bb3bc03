package manager

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/travigo/caltrain/pkg/dataimporter/datasets"
	"github.com/travigo/caltrain/pkg/util"
	"gopkg.in/yaml.v3"
)

//go:embed datasources/*.yaml
var embeddedDataSources embed.FS

// GetRegisteredDataSets loads the built in data sources followed by any *.yaml files in
// CALTRAIN_DATASOURCES_DIR.
func GetRegisteredDataSets() ([]datasets.DataSet, error) {
	var registeredDatasets []datasets.DataSet

	embedded, err := loadDataSources(embeddedDataSources, "datasources")
	if err != nil {
		return nil, err
	}
	registeredDatasets = append(registeredDatasets, embedded...)

	env := util.GetEnvironmentVariables()
	if directory := env["CALTRAIN_DATASOURCES_DIR"]; directory != "" {
		extra, err := loadDataSources(os.DirFS(directory), ".")
		if err != nil {
			return nil, err
		}
		registeredDatasets = append(registeredDatasets, extra...)
	}

	seen := map[string]bool{}
	for _, dataset := range registeredDatasets {
		if seen[dataset.Identifier] {
			return nil, fmt.Errorf("dataset %s registered more than once", dataset.Identifier)
		}
		seen[dataset.Identifier] = true
	}

	return registeredDatasets, nil
}

func loadDataSources(fsys fs.FS, root string) ([]datasets.DataSet, error) {
	var registeredDatasets []datasets.DataSet

	err := fs.WalkDir(fsys, root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() || filepath.Ext(path) != ".yaml" {
			return nil
		}

		log.Debug().Str("path", path).Msg("Loading data source file")

		file, err := fsys.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()

		loaded, err := decodeDataSources(file)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		registeredDatasets = append(registeredDatasets, loaded...)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return registeredDatasets, nil
}

func decodeDataSources(reader io.Reader) ([]datasets.DataSet, error) {
	var registeredDatasets []datasets.DataSet

	decoder := yaml.NewDecoder(reader)

	for {
		var datasource datasets.DataSource
		if err := decoder.Decode(&datasource); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			return nil, err
		}

		if err := datasource.Validate(); err != nil {
			return nil, err
		}

		for _, dataset := range datasource.Datasets {
			dataset.Identifier = fmt.Sprintf("%s-%s", datasource.Identifier, dataset.Identifier)
			dataset.DataSourceRef = datasource.Identifier
			dataset.Provider = datasource.Provider

			registeredDatasets = append(registeredDatasets, dataset)
		}
	}

	return registeredDatasets, nil
}
