package domain

// Catalog tool names exposed to the model. These are the only operations the
// assistant can perform against the shop; everything else is conversation.
const (
	// ToolSearchProducts searches the catalog by keyword.
	ToolSearchProducts = "search_products"

	// ToolGetProductDetails looks up a single product by ID.
	ToolGetProductDetails = "get_product_details"
)

// ToolCall is a model-requested invocation of a catalog tool.
type ToolCall struct {
	// ID is the provider-assigned call identifier, echoed back in the result.
	ID string

	// Name is the tool to invoke.
	Name string

	// Arguments is the raw JSON argument object as produced by the model.
	Arguments string
}

// KnownTool returns true if the name matches a tool the assistant implements.
func KnownTool(name string) bool {
	switch name {
	case ToolSearchProducts, ToolGetProductDetails:
		return true
	default:
		return false
	}
}
