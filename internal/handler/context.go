package handler

type ContextKey string

var (
	RoleCtxKey  ContextKey = "role"
	SubCtxKey   ContextKey = "sub"
	MyInfoCtx   ContextKey = "myInfo"
	UserInfoCtx ContextKey = "userInfo"
	ResourceCtx ContextKey = "resource"
	TimeSlotCtx ContextKey = "timeSlot"
	ShiftCtx    ContextKey = "shift"
)
