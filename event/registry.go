package event

import "reflect"

var (
	typeToName    = make(map[EventType]string)
	nameToType    = make(map[string]EventType)
	typeToPayload = make(map[EventType]reflect.Type)
)

// registerType maps a name to an EventType and its payload struct type
// payloadInstance should be a pointer to the payload struct, nil for payload-less events
func registerType(name string, et EventType, payloadInstance any) {
	nameToType[name] = et
	typeToName[et] = name
	if payloadInstance != nil {
		t := reflect.TypeOf(payloadInstance)
		if t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		typeToPayload[et] = t
	}
}

func init() {
	registerType("EventChallengeCompleted", EventChallengeCompleted, &ChallengeCompletedPayload{})
	registerType("EventStarsChanged", EventStarsChanged, &StarsChangedPayload{})
	registerType("EventChallengesReset", EventChallengesReset, &ChallengesResetPayload{})
	registerType("EventKeypadOutcome", EventKeypadOutcome, &KeypadOutcomePayload{})
	registerType("EventKeypadCleared", EventKeypadCleared, nil)
	registerType("EventLightToggled", EventLightToggled, &ToggledPayload{})
	registerType("EventFlashlightToggled", EventFlashlightToggled, &ToggledPayload{})
	registerType("EventPhaseChanged", EventPhaseChanged, &PhaseChangedPayload{})
	registerType("EventRoomCompleted", EventRoomCompleted, &StarsChangedPayload{})
}

// String returns the registered name, "EventUnknown" otherwise
func (et EventType) String() string {
	if name, ok := typeToName[et]; ok {
		return name
	}
	return "EventUnknown"
}

// GetEventType returns the EventType for a registered name
func GetEventType(name string) (EventType, bool) {
	et, ok := nameToType[name]
	return et, ok
}

// PayloadType returns the registered payload struct type, nil when the event carries none
func PayloadType(et EventType) reflect.Type {
	return typeToPayload[et]
}

// CheckPayload reports whether payload matches the registration for et
func CheckPayload(et EventType, payload any) bool {
	want, ok := typeToPayload[et]
	if !ok {
		return payload == nil
	}
	if payload == nil {
		return false
	}
	got := reflect.TypeOf(payload)
	return got.Kind() == reflect.Ptr && got.Elem() == want
}
