package datasets

type DataSource struct {
	Identifier string    `yaml:"identifier" validate:"required"`
	Region     string    `yaml:"region"`
	Provider   Provider  `yaml:"provider" validate:"required"`
	Datasets   []DataSet `yaml:"datasets" validate:"required,min=1,dive"`
}
