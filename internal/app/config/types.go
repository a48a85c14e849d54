package config

type (
	DriverConfig struct {
		MongoDB  MongoDB
		Redis    Redis
		Logger   Logger
		RabbitMQ RabbitMQ
		Minio    Minio
	}
	MongoDB struct {
		Port     string
		Host     string
		Username string
		Password string
		DbName   string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
	RabbitMQ struct {
		Enabled  bool
		Port     string
		Host     string
		Username string
		Password string
	}
	Minio struct {
		Enabled    bool
		Port       string
		Host       string
		Username   string
		Password   string
		UseSSL     bool
		BucketName string
	}
)

type InternalConfig struct {
	App          App
	ModelService ModelService
	Prediction   Prediction
	Import       Import
}

type App struct {
	Env                     string
	Port                    string
	Timezone                string
	BaseUrl                 string
	MaxRequests             int
	RequestTimeoutInSeconds int
	ShutdownTimeout         int
}

type ModelService struct {
	BaseUrl          string
	TimeoutInSeconds int
}

type Prediction struct {
	RateLimitPerMinute int
}

type Import struct {
	MaxUploadSizeInMegabyte int
}
