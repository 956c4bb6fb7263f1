package constants

const (
	MAX_ASSETS_PER_CHECK          = 1000
	MAX_QUERIES_PER_BATCH_REQUEST = 100
	MAX_NAMES_PER_REQUEST         = 1000
	SERVICE_NAME                  = "ff-ownership-resolver"
)
