package configuration

import "github.com/adampresley/configinator"

type Config struct {
	AdminSecret        string `flag:"adminsecret" env:"ADMIN_SECRET" default:"" description:"Shared secret required in the X-Admin-Secret header for admin routes"`
	AllowBearerTokens  bool   `flag:"allowbearer" env:"ALLOW_BEARER_TOKENS" default:"false" description:"Also accept the session token from an Authorization: Bearer header"`
	AwsEndpointUrl     string `flag:"awsep" env:"AWS_ENDPOINT_URL" default:"" description:"AWS endpoint URL"`
	AwsRegion          string `flag:"awsregion" env:"AWS_REGION" default:"us-east-1" description:"AWS region"`
	AwsAccessKeyId     string `flag:"awsaccesskeyid" env:"AWS_ACCESS_KEY_ID" default:"" description:"AWS access key ID"`
	AwsSecretAccessKey string `flag:"awssecretaccesskey" env:"AWS_SECRET_ACCESS_KEY" default:"" description:"AWS secret access key"`
	AwsBucket          string `flag:"awsbucket" env:"AWS_BUCKET" default:"" description:"S3 bucket for photos and site documents"`
	CookieSecure       bool   `flag:"cookiesecure" env:"COOKIE_SECURE" default:"false" description:"Mark the session cookie Secure"`
	DataDir            string `flag:"datadir" env:"DATA_DIR" default:"./data" description:"Directory holding the site JSON documents"`
	DatabaseURL        string `flag:"databaseurl" env:"DATABASE_URL" default:"" description:"Postgres connection URL. Takes precedence over DSN"`
	DSN                string `flag:"dsn" env:"DSN" default:"file:./data/portal.db?_pragma=foreign_keys(1)&_time_format=sqlite" description:"SQLite data source name"`
	EmailApiKey        string `flag:"emailapikey" env:"EMAIL_API_KEY" default:"" description:"Resend API key for approval emails"`
	FromEmail          string `flag:"fromemail" env:"FROM_EMAIL" default:"noreply@example.com" description:"Sender address for approval emails"`
	FromName           string `flag:"fromname" env:"FROM_NAME" default:"Album Portal" description:"Sender name for approval emails"`
	Host               string `flag:"host" env:"HOST" default:"localhost:8081" description:"The address and port to bind the HTTP server to"`
	LogFormat          string `flag:"logformat" env:"LOG_FORMAT" default:"text" description:"Log output format. Valid values are 'text' and 'json'"`
	LogLevel           string `flag:"loglevel" env:"LOG_LEVEL" default:"debug" description:"The log level to use. Valid values are 'debug', 'info', 'warn', and 'error'"`
	MaxUploadMB        int    `flag:"maxuploadmb" env:"MAX_UPLOAD_MB" default:"1024" description:"Largest accepted photo upload request, in megabytes"`
	MaxUploadWorkers   int    `flag:"muw" env:"MAX_UPLOAD_WORKERS" default:"4" description:"Maximum number of concurrent photo upload workers"`
	NotifyEmail        string `flag:"notifyemail" env:"NOTIFY_EMAIL" default:"" description:"Studio address notified when an album is approved"`
	ReadOnlyFS         bool   `flag:"readonlyfs" env:"READ_ONLY_FS" default:"false" description:"The local filesystem is read-only (serverless hosting)"`
	SessionSecret      string `flag:"sessionsecret" env:"SESSION_SECRET" default:"password" description:"Secret for signing customer sessions"`
	SessionSigner      string `flag:"sessionsigner" env:"SESSION_SIGNER" default:"securecookie" description:"Session token format. Valid values are 'securecookie' and 'jwt'"`
	SiteDataPrefix     string `flag:"sitedataprefix" env:"SITE_DATA_PREFIX" default:"site-data" description:"Object storage prefix for the site JSON documents"`
	ThumbnailSize      int    `flag:"thumbsize" env:"THUMBNAIL_SIZE" default:"400" description:"Longest edge of generated thumbnails, in pixels"`
	UploadsDir         string `flag:"uploadsdir" env:"UPLOADS_DIR" default:"./uploads" description:"Directory holding uploaded photos when object storage is not used"`
}

func LoadConfig() Config {
	config := Config{}
	configinator.Behold(&config)
	return config
}

// UseObjectStorage reports whether photo bytes and documents live in S3.
func (c Config) UseObjectStorage() bool {
	return c.DatabaseURL != "" && c.AwsBucket != ""
}
