package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyLogDir string = "WAP_LOG_DIR"

	LoggerNamePipeline      string = "pipeline"
	LoggerNameRestfulServer string = "restful_server"
	LoggerNameScheduler     string = "scheduler"
	LoggerNameOpenMeteo     string = "openmeteo"
	LoggerNameNotifier      string = "notifier"
	LoggerNameStore         string = "store"

	LoggerFieldCategory     string = "category"
	LoggerCategoryCycle     string = "cycle"
	LoggerCategoryEvaluate  string = "evaluate"
	LoggerCategoryDispatch  string = "dispatch"
	LoggerCategoryReading   string = "reading"
	LoggerCategoryAlertLog  string = "alert_log"
	LoggerFieldCycleID      string = "cycle_id"
	LoggerFieldAlertKind    string = "alert_kind"
	LoggerFieldAlertOutcome string = "outcome"
)
