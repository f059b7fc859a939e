package registry

// Command binds a system instruction and a model to a name
type Command struct {
	Name              string `json:"command"`
	Model             string `json:"model"`
	SystemInstruction string `json:"system_instructions"`
}
