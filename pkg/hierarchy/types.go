package hierarchy

import "strings"

// Kind is the level an element occupies in the hierarchy.
type Kind int

const (
	KindTenant Kind = iota
	KindWorkspace
	KindFolder
	KindItem
	KindOneLake
)

func (k Kind) String() string {
	switch k {
	case KindTenant:
		return "Tenant"
	case KindWorkspace:
		return "Workspace"
	case KindFolder:
		return "Folder"
	case KindItem:
		return "Item"
	case KindOneLake:
		return "OneLake"
	default:
		return "Unknown"
	}
}

// Workspace and folder type suffixes.
const (
	TypeWorkspace = "Workspace"
	TypePersonal  = "Personal"
	TypeFolder    = "Folder"
)

// itemTypes are the item type suffixes accepted in paths.
var itemTypes = []string{
	"Dashboard",
	"Datamart",
	"DataPipeline",
	"Environment",
	"Eventhouse",
	"Eventstream",
	"GraphQLApi",
	"KQLDashboard",
	"KQLDatabase",
	"KQLQueryset",
	"Lakehouse",
	"MirroredDatabase",
	"MirroredWarehouse",
	"MLExperiment",
	"MLModel",
	"Notebook",
	"PaginatedReport",
	"Reflex",
	"Report",
	"SemanticModel",
	"SparkJobDefinition",
	"SQLDatabase",
	"SQLEndpoint",
	"VariableLibrary",
	"Warehouse",
}

// oneLakeItemTypes are the item types whose contents can be browsed as
// OneLake paths.
var oneLakeItemTypes = map[string]bool{
	"Eventhouse":       true,
	"KQLDatabase":      true,
	"Lakehouse":        true,
	"MirroredDatabase": true,
	"SemanticModel":    true,
	"SQLDatabase":      true,
	"Warehouse":        true,
}

// ItemTypes returns the supported item types.
func ItemTypes() []string {
	out := make([]string, len(itemTypes))
	copy(out, itemTypes)
	return out
}

// canonicalItemType returns the canonical spelling of an item type matched
// case-insensitively.
func canonicalItemType(t string) (string, bool) {
	for _, it := range itemTypes {
		if strings.EqualFold(it, t) {
			return it, true
		}
	}
	return "", false
}
