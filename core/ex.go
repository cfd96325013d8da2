package core

// TurnstileConfig makes an example Config that's useful to have
// around.
//
// See https://en.wikipedia.org/wiki/Finite-state_machine#Example:_coin-operated_turnstile.
func TurnstileConfig() *Config[string] {
	return &Config[string]{
		Name:            "turnstile",
		Doc:             "The classic coin-operated turnstile.",
		States:          []string{"locked", "unlocked"},
		Alphabet:        []string{"coin", "push"},
		InitialState:    "locked",
		AcceptingStates: []string{"locked"},
		Transitions: []Transition{
			{From: "locked", On: "coin", To: "unlocked"},
			{From: "locked", On: "push", To: "locked"},
			{From: "unlocked", On: "coin", To: "unlocked"},
			{From: "unlocked", On: "push", To: "locked"},
		},
		Outputs: []Output[string]{
			{State: "locked", Value: "halt"},
			{State: "unlocked", Value: "pass"},
		},
	}
}

// TrafficLightConfig makes another example Config.
//
// A single "Next" symbol cycles Red, Green, Yellow, Red.
func TrafficLightConfig() *Config[string] {
	return &Config[string]{
		Name:            "traffic-light",
		States:          []string{"Red", "Yellow", "Green"},
		Alphabet:        []string{"Next"},
		InitialState:    "Red",
		AcceptingStates: []string{"Red", "Green"},
		Transitions: []Transition{
			{From: "Red", On: "Next", To: "Green"},
			{From: "Green", On: "Next", To: "Yellow"},
			{From: "Yellow", On: "Next", To: "Red"},
		},
		Outputs: []Output[string]{
			{State: "Red", Value: "Stop"},
			{State: "Green", Value: "Go"},
			{State: "Yellow", Value: "Prepare to stop"},
		},
	}
}
