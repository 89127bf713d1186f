package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Defaults for the physics loss configuration surface
const (
	DefaultLambdaMomentum = 0.1
	DefaultWarmupEpochs   = 0
	DefaultMaxPhysicsLoss = 10.0
)

// Parameters obtained from the YAML input file
type PhysicsParameters struct {
	Title          string  `yaml:"Title"`
	LambdaMomentum float64 `yaml:"LambdaMomentum"` // Weight on the momentum conservation term
	WarmupEpochs   int     `yaml:"WarmupEpochs"`   // Epochs to ramp the physics weight from 0 to full, 0 disables
	MaxPhysicsLoss float64 `yaml:"MaxPhysicsLoss"` // Ceiling on the weighted physics term
}

func NewPhysicsParameters() *PhysicsParameters {
	return &PhysicsParameters{
		LambdaMomentum: DefaultLambdaMomentum,
		WarmupEpochs:   DefaultWarmupEpochs,
		MaxPhysicsLoss: DefaultMaxPhysicsLoss,
	}
}

func (pp *PhysicsParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, pp)
}

func (pp *PhysicsParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", pp.Title)
	fmt.Printf("%8.5f\t\t= LambdaMomentum\n", pp.LambdaMomentum)
	fmt.Printf("[%d]\t\t\t= WarmupEpochs\n", pp.WarmupEpochs)
	fmt.Printf("%8.5f\t\t= MaxPhysicsLoss\n", pp.MaxPhysicsLoss)
}
