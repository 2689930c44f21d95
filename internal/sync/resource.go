package sync

import (
	"fmt"
	"sort"

	"github.com/iupui-soic/dhis2-android-sdk/internal/api"
)

// Registry is the dispatch table mapping a resource type name to its
// projection schema. One declarative schema per resource type replaces the
// hand-written query builder and applier classes each type used to need.
type Registry map[string]api.Schema

// Get returns the schema registered for resource.
func (r Registry) Get(resource string) (api.Schema, error) {
	schema, ok := r[resource]
	if !ok {
		return api.Schema{}, fmt.Errorf("%w: %s", ErrUnknownResource, resource)
	}
	return schema, nil
}

// Names lists the registered resource types in stable order.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns the resource types the client synchronizes out of
// the box. Nested collections are projected with their own minimal field
// lists so one round trip fetches the graph needed offline.
func DefaultRegistry() Registry {
	optionSetRef := api.Schema{
		Resource: "optionSets",
		Fields:   []api.Field{api.F("id"), api.F("version")},
	}

	dataElements := api.Schema{
		Resource: "dataElements",
		Fields: []api.Field{
			api.F("id"), api.F("code"), api.F("name"), api.F("displayName"),
			api.F("created"), api.F("lastUpdated"), api.F("valueType"),
			api.F("deleted"), api.F("zeroIsSignificant"),
			api.Ref("optionSet", optionSetRef),
		},
	}

	programStageDataElements := api.Schema{
		Resource: "programStageDataElements",
		Fields: []api.Field{
			api.F("id"), api.F("created"), api.F("lastUpdated"),
			api.F("compulsory"), api.F("allowFutureDate"), api.F("sortOrder"),
			api.F("deleted"),
			api.Ref("dataElement", dataElements),
		},
	}

	programStages := api.Schema{
		Resource: "programStages",
		Fields: []api.Field{
			api.F("id"), api.F("code"), api.F("name"), api.F("displayName"),
			api.F("created"), api.F("lastUpdated"), api.F("repeatable"),
			api.F("sortOrder"), api.F("minDaysFromStart"), api.F("deleted"),
			api.Nest("programStageDataElements", programStageDataElements),
		},
	}

	programs := api.Schema{
		Resource: "programs",
		Fields: []api.Field{
			api.F("id"), api.F("code"), api.F("name"), api.F("displayName"),
			api.F("created"), api.F("lastUpdated"), api.F("shortName"),
			api.F("description"), api.F("version"), api.F("programType"),
			api.F("onlyEnrollOnce"), api.F("registration"), api.F("deleted"),
			api.Nest("programStages", programStages),
			api.Ref("trackedEntity", api.Schema{
				Resource: "trackedEntities",
				Fields:   []api.Field{api.F("id")},
			}),
		},
	}

	options := api.Schema{
		Resource: "options",
		Fields: []api.Field{
			api.F("id"), api.F("code"), api.F("name"), api.F("displayName"),
			api.F("created"), api.F("lastUpdated"), api.F("sortOrder"),
			api.F("deleted"),
		},
	}

	optionSets := api.Schema{
		Resource: "optionSets",
		Fields: []api.Field{
			api.F("id"), api.F("code"), api.F("name"), api.F("displayName"),
			api.F("created"), api.F("lastUpdated"), api.F("version"),
			api.F("valueType"), api.F("deleted"),
			api.Nest("options", options),
		},
	}

	events := api.Schema{
		Resource: "events",
		Fields: []api.Field{
			api.F("id"), api.F("program"), api.F("programStage"),
			api.F("orgUnit"), api.F("eventDate"), api.F("status"),
			api.F("created"), api.F("lastUpdated"), api.F("deleted"),
			api.F("dataValues"),
		},
	}

	return Registry{
		programs.Resource:   programs,
		optionSets.Resource: optionSets,
		events.Resource:     events,
	}
}
