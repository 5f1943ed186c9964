package hugo

// StageName identifies a build stage.
type StageName string

const (
	StagePrepareOutput  StageName = "prepare_output"
	StageI18n           StageName = "i18n"
	StageGenerateConfig StageName = "generate_config"
	StageComponents     StageName = "components"
	StageLayouts        StageName = "layouts"
	StageRunHugo        StageName = "run_hugo"
	StageVerifyLinks    StageName = "verify_links"
)

// StageDef pairs a stage name with its function.
type StageDef struct {
	Name StageName
	Fn   Stage
}

// Pipeline collects stages in execution order.
type Pipeline struct {
	stages []StageDef
}

// NewPipeline returns an empty pipeline.
func NewPipeline() *Pipeline { return &Pipeline{} }

// Add appends a stage.
func (p *Pipeline) Add(name StageName, fn Stage) *Pipeline {
	p.stages = append(p.stages, StageDef{Name: name, Fn: fn})
	return p
}

// Build returns the stage list.
func (p *Pipeline) Build() []StageDef { return append([]StageDef(nil), p.stages...) }

func defaultStages() []StageDef {
	return NewPipeline().
		Add(StagePrepareOutput, stagePrepareOutput).
		Add(StageI18n, stageI18n).
		Add(StageGenerateConfig, stageGenerateConfig).
		Add(StageComponents, stageComponents).
		Add(StageLayouts, stageLayouts).
		Add(StageRunHugo, stageRunHugo).
		Add(StageVerifyLinks, stageVerifyLinks).
		Build()
}
