package domain

// SlideKind selects the runtime behavior of a slide.
type SlideKind string

const (
	KindStatic      SlideKind = "static"
	KindWalkthrough SlideKind = "walkthrough"
	KindWorkflow    SlideKind = "workflow"
)

// ClickPolicy decides what a node click does on a walkthrough slide.
type ClickPolicy string

const (
	// ClickFocus toggles focus on the clicked node.
	ClickFocus ClickPolicy = "focus"
	// ClickJump moves the run to the clicked node's chain position.
	ClickJump ClickPolicy = "jump"
)

// Deck is the complete authored content of a presentation.
type Deck struct {
	Title  string     `json:"title" yaml:"title" jsonschema:"required"`
	Slides []SlideDef `json:"slides" yaml:"slides" jsonschema:"required,minItems=1"`
}

// SlideByID returns the definition with the given id and its position.
func (d Deck) SlideByID(id string) (SlideDef, int, bool) {
	for i, s := range d.Slides {
		if s.ID == id {
			return s, i, true
		}
	}
	return SlideDef{}, -1, false
}

// SlideDef declares one slide.
type SlideDef struct {
	ID          string    `json:"id" yaml:"id" jsonschema:"required,pattern=^[a-z0-9-]+$"`
	Title       string    `json:"title" yaml:"title" jsonschema:"required"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Kind        SlideKind `json:"kind" yaml:"kind" jsonschema:"required,enum=static,enum=walkthrough,enum=workflow"`
	// Body is markdown shown beside (or instead of) the interactive part.
	Body        string          `json:"body,omitempty" yaml:"body,omitempty"`
	Walkthrough *WalkthroughDef `json:"walkthrough,omitempty" yaml:"walkthrough,omitempty"`
	Workflow    *WorkflowDef    `json:"workflow,omitempty" yaml:"workflow,omitempty"`
}

// WalkthroughDef configures a diagram slide driven by the step sequencer.
type WalkthroughDef struct {
	Modes []ModeDef   `json:"modes" yaml:"modes" jsonschema:"required,minItems=1"`
	Click ClickPolicy `json:"click,omitempty" yaml:"click,omitempty" jsonschema:"enum=,enum=focus,enum=jump"`
	// StartLabel is the button caption while idle, e.g. "Run Flow".
	StartLabel string `json:"start_label,omitempty" yaml:"start_label,omitempty"`
	// AutoStart starts an auto-playing run shortly after the slide mounts.
	AutoStart bool `json:"auto_start,omitempty" yaml:"auto_start,omitempty"`
	// IdleCycle rotates a highlight across the nodes while nothing runs.
	IdleCycle bool `json:"idle_cycle,omitempty" yaml:"idle_cycle,omitempty"`
}

// ModeDef is one selectable variant of a walkthrough.
type ModeDef struct {
	Name        string                `json:"name" yaml:"name" jsonschema:"required"`
	Title       string                `json:"title,omitempty" yaml:"title,omitempty"`
	Description string                `json:"description,omitempty" yaml:"description,omitempty"`
	Diagram     Diagram               `json:"diagram" yaml:"diagram" jsonschema:"required"`
	Chain       []string              `json:"chain,omitempty" yaml:"chain,omitempty"`
	Annotations map[string]string     `json:"annotations,omitempty" yaml:"annotations,omitempty"`
	Details     map[string]NodeDetail `json:"details,omitempty" yaml:"details,omitempty"`
	Pros        []string              `json:"pros,omitempty" yaml:"pros,omitempty"`
	Cons        []string              `json:"cons,omitempty" yaml:"cons,omitempty"`
	WhenToUse   string                `json:"when_to_use,omitempty" yaml:"when_to_use,omitempty"`
	Complexity  string                `json:"complexity,omitempty" yaml:"complexity,omitempty" jsonschema:"enum=,enum=Low,enum=Medium,enum=High"`
	Risk        string                `json:"risk,omitempty" yaml:"risk,omitempty" jsonschema:"enum=,enum=Low,enum=Medium,enum=High"`
}

// NodeDetail is the explanation panel shown for a focused node.
type NodeDetail struct {
	Question    string   `json:"question,omitempty" yaml:"question,omitempty"`
	Description string   `json:"description" yaml:"description"`
	Points      []string `json:"points,omitempty" yaml:"points,omitempty"`
}

// WorkflowDef configures the agent-supervised production workflow slide.
type WorkflowDef struct {
	Scenarios []ScenarioDef  `json:"scenarios" yaml:"scenarios" jsonschema:"required,minItems=1"`
	Agents    []AgentDef     `json:"agents" yaml:"agents" jsonschema:"required,minItems=1"`
	Without   []StepDef      `json:"without" yaml:"without" jsonschema:"required,minItems=1"`
	Status    []string       `json:"status,omitempty" yaml:"status,omitempty"`
	KPIs      []KPIDef       `json:"kpis,omitempty" yaml:"kpis,omitempty"`
	Timeline  []TimelineDef  `json:"timeline,omitempty" yaml:"timeline,omitempty"`
	Approval  []ApprovalRule `json:"approval,omitempty" yaml:"approval,omitempty"`
	Actions   []SystemAction `json:"actions,omitempty" yaml:"actions,omitempty"`
	// GateStep is the agent index where the run waits for a decision.
	GateStep int `json:"gate_step" yaml:"gate_step" jsonschema:"minimum=0"`
	// RecoveryStep is the first step at which KPIs show the recovered values.
	RecoveryStep int `json:"recovery_step" yaml:"recovery_step" jsonschema:"minimum=0"`
	// ManualNote replaces the timeline when the run is manual.
	ManualNote string `json:"manual_note,omitempty" yaml:"manual_note,omitempty"`
}

// ScenarioDef names a production line the workflow can be replayed on.
type ScenarioDef struct {
	Key   string `json:"key" yaml:"key" jsonschema:"required"`
	Label string `json:"label" yaml:"label" jsonschema:"required"`
}

// AgentDef is one agent card of the workflow slide.
type AgentDef struct {
	ID           string   `json:"id" yaml:"id" jsonschema:"required"`
	Label        string   `json:"label" yaml:"label" jsonschema:"required"`
	Sub          string   `json:"sub,omitempty" yaml:"sub,omitempty"`
	Category     Category `json:"category,omitempty" yaml:"category,omitempty"`
	Input        string   `json:"input,omitempty" yaml:"input,omitempty"`
	Output       string   `json:"output,omitempty" yaml:"output,omitempty"`
	LiveAction   string   `json:"live_action,omitempty" yaml:"live_action,omitempty"`
	Role         string   `json:"role,omitempty" yaml:"role,omitempty"`
	Value        string   `json:"value,omitempty" yaml:"value,omitempty"`
	Context      []string `json:"context,omitempty" yaml:"context,omitempty"`
	Analysis     string   `json:"analysis,omitempty" yaml:"analysis,omitempty"`
	Contribution string   `json:"contribution,omitempty" yaml:"contribution,omitempty"`
	Confidence   int      `json:"confidence,omitempty" yaml:"confidence,omitempty" jsonschema:"minimum=0,maximum=100"`
}

// StepDef is one step of the manual (agent-less) process.
type StepDef struct {
	Label string `json:"label" yaml:"label" jsonschema:"required"`
	Sub   string `json:"sub,omitempty" yaml:"sub,omitempty"`
}

// KPIDef is a business metric compared with and without agents.
// Qualitative metrics show Words instead of numbers.
type KPIDef struct {
	Label       string   `json:"label" yaml:"label" jsonschema:"required"`
	Without     float64  `json:"without" yaml:"without"`
	WithoutUnit string   `json:"without_unit,omitempty" yaml:"without_unit,omitempty"`
	With        float64  `json:"with" yaml:"with"`
	WithUnit    string   `json:"with_unit,omitempty" yaml:"with_unit,omitempty"`
	Prefix      string   `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Positive    bool     `json:"positive,omitempty" yaml:"positive,omitempty"`
	Decimals    int      `json:"decimals,omitempty" yaml:"decimals,omitempty" jsonschema:"minimum=0,maximum=3"`
	Words       *KPIWord `json:"words,omitempty" yaml:"words,omitempty"`
}

// KPIWord holds the captions of a qualitative KPI.
type KPIWord struct {
	Pending string `json:"pending" yaml:"pending"`
	Danger  string `json:"danger" yaml:"danger"`
	Safe    string `json:"safe" yaml:"safe"`
}

// TimelineDef is one marker of the incident timeline.
type TimelineDef struct {
	T     string `json:"t" yaml:"t"`
	Label string `json:"label" yaml:"label"`
}

// ApprovalRule maps a risk level to who signs off.
type ApprovalRule struct {
	Level  string `json:"level" yaml:"level"`
	Action string `json:"action" yaml:"action"`
}

// SystemAction is a downstream effect that completes at Step.
type SystemAction struct {
	Label string `json:"label" yaml:"label"`
	Step  int    `json:"step" yaml:"step"`
}
