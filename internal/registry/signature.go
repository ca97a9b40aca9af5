package registry

import "github.com/buicq/taskcli/internal/cast"

// ParameterDescriptor is the flattened view of one task parameter, in the
// shape the command layer consumes.
type ParameterDescriptor struct {
	Name     string
	Type     cast.Type
	Default  interface{}
	Required bool
}

// Signature returns the task's parameter descriptors in declaration order
// plus its description text ("" when the task carries none). The slice is
// rebuilt on every call; callers must not assume a shared copy.
func (t *Task) Signature() ([]ParameterDescriptor, string) {
	descriptors := make([]ParameterDescriptor, 0, len(t.Params))
	for _, p := range t.Params {
		def, hasDefault := p.Default()
		descriptors = append(descriptors, ParameterDescriptor{
			Name:     p.Name,
			Type:     p.Type,
			Default:  def,
			Required: !hasDefault,
		})
	}
	return descriptors, t.Description
}
