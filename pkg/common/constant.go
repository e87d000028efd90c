package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyLogDir   string = "LOG_DIR"
	EnvKeyLogLevel string = "LOG_LEVEL"

	EnvKeyDBType string = "JOYSTICK_DB_TYPE"
	EnvKeyDbPath string = "JOYSTICK_DB_PATH"
	EnvKeyDbDSN  string = "JOYSTICK_DB_DSN"

	EnvKeyHttpHostPort string = "JOYSTICK_HTTP_HOST_PORT"
	EnvKeyGrpcHostPort string = "JOYSTICK_GRPC_HOST_PORT"

	EnvKeyDefaultRate  string = "JOYSTICK_DEFAULT_RATE"
	EnvKeyDefaultBurst string = "JOYSTICK_DEFAULT_BURST"

	EnvKeyAPIKey           string = "JOYSTICK_API_KEY"
	EnvKeyAllowInternal    string = "JOYSTICK_ALLOW_INTERNAL"
	EnvKeySessionTTL       string = "JOYSTICK_SESSION_TTL"
	EnvKeySystemUserEmail  string = "USERNAME"
	EnvKeySystemPassword   string = "PASSWORD"
	EnvKeyAdminUserEmail   string = "SUPERUSER_USERNAME"
	EnvKeyStreamAPIURL     string = "STREAM_API_URL"
	EnvKeySwitcherAPIURL   string = "SWITCHER_API_URL"
	EnvKeyJoystickAPIURL   string = "JOYSTICK_API_URL"
	EnvKeyJoystickGrpcAddr string = "JOYSTICK_GRPC_ADDR"
	EnvKeyMQTTBroker       string = "MQTT_BROKER"
	EnvKeyMQTTClientID     string = "MQTT_CLIENT_ID"
	EnvKeyRedisAddr        string = "REDIS_ADDR"
	EnvKeyBakerHostPort    string = "BAKER_HOST_PORT"
	EnvKeySwitcherHostPort string = "SWITCHER_HOST_PORT"
	EnvKeyWhisperHostPort  string = "WHISPER_HOST_PORT"

	EnvKeySMSGatewayURL      string = "SMS_GATEWAY_URL"
	EnvKeySMSGatewayUsername string = "SMS_GATEWAY_USERNAME"
	EnvKeySMSGatewayPassword string = "SMS_GATEWAY_PASSWORD"
	EnvKeySMSGatewayModem    string = "SMS_GATEWAY_MODEM"
	EnvKeySMSReplyTimeout    string = "SMS_REPLY_TIMEOUT"

	LoggerNameJoystickCore  string = "joystick_core"
	LoggerNameRestfulServer string = "restful_server"
	LoggerNameGrpcServer    string = "grpc_server"
	LoggerNameBaker         string = "baker"
	LoggerNameSwitcher      string = "switcher"
	LoggerNameWhisper       string = "whisper"
	LoggerNameHooks         string = "hooks"
	LoggerNameDB            string = "db"
	LoggerNameRemote        string = "remote_client"

	LoggerFieldCategory string = "category"

	LoggerCategoryAction       string = "action"
	LoggerCategoryPermission   string = "permission"
	LoggerCategoryDevice       string = "device"
	LoggerCategoryNotification string = "notification"
	LoggerCategoryAuth         string = "auth"
	LoggerCategoryEvents       string = "events"
	LoggerCategoryMigration    string = "migration"
	LoggerCategoryJob          string = "job"
	LoggerCategoryStatus       string = "status"
	LoggerCategoryCache        string = "cache"
	LoggerCategorySession      string = "session"
)
