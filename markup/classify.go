package markup

// DefaultBridgeTag is the tag name of the runtime bridge component that
// the editor runtime wraps annotated elements with
const DefaultBridgeTag = "EditorBridge"

// IsComposedComponent reports whether a tag names a user-defined component
// rather than a native element. The test is purely lexical: an uppercase
// ASCII first letter, following the JSX naming convention.
func IsComposedComponent(tag string) bool {
	return tag != "" && tag[0] >= 'A' && tag[0] <= 'Z'
}

// IsBridged reports whether a node is already wrapped by the runtime bridge
// component, i.e. its immediate parent carries the bridge tag
func IsBridged(parent *Element, bridgeTag string) bool {
	if bridgeTag == "" {
		bridgeTag = DefaultBridgeTag
	}
	return parent != nil && parent.Tag == bridgeTag
}
