// Package editorapi defines the contract between the host application and
// editor plugins: identity tokens, file-type descriptors, and the uniform
// panel and instance interfaces the host programs against.
//
// The host never depends on a concrete editor type. It receives an opaque
// PanelView for display and an EditorInstance for save/reload/dirty queries,
// and may recover the concrete editor through EditorInstance.AsAny with a
// comma-ok type assertion.
package editorapi
