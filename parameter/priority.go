package parameter

// System execution priorities (lower runs first)
// Input must be applied before movement, camera follows the moved agent, delayed tasks settle last
const (
	PriorityMovement  = 10
	PriorityCamera    = 20
	PriorityScheduler = 30
	PriorityStatus    = 40
)
