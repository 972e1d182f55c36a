package apierrors

// Task messages.
const (
	MsgInvalidTaskID         = "invalidTaskID"
	MsgInvalidTaskPayload    = "invalidTaskPayload"
	MsgInvalidTaskStatus     = "invalidTaskStatus"
	MsgInvalidDate           = "invalidDate"
	MsgTaskNotFound          = "taskNotFound"
	MsgTaskHierarchyCycle    = "taskHierarchyCycle"
	MsgFailListTask          = "errorListTask"
	MsgFailGetTask           = "failGetTask"
	MsgFailCreateTask        = "failCreateTask"
	MsgFailUpdateTask        = "failUpdateTask"
	MsgFailUpdateTaskStatus  = "failUpdateTaskStatus"
	MsgFailDeleteTask        = "failDeleteTask"
	MsgFailCompletionSummary = "failCompletionSummary"
)

// User messages.
const (
	MsgInvalidUserPayload = "invalidUserPayload"
	MsgUserAlreadyExists  = "userAlreadyExists"
	MsgInvalidCredentials = "invalidCredentials"
	MsgUnauthorized       = "unauthorized"
	MsgUserNotFound       = "userNotFound"
	MsgFailRegisterUser   = "failRegisterUser"
	MsgFailLoginUser      = "failLoginUser"
	MsgFailGetProfile     = "failGetProfile"
)
