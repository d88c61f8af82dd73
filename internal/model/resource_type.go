package model

// ResourceType is the closed set of bookable resource kinds.
type ResourceType string

const (
	ResourceStation  ResourceType = "station"
	ResourceCrawler  ResourceType = "crawler"
	ResourcePlatform ResourceType = "platform"
	ResourceRT       ResourceType = "rt"
	ResourceOperator ResourceType = "operator"
)

// ResourceMeta holds the per-kind static wiring: the column identifying the
// booked resource instance and the event table name.
type ResourceMeta struct {
	FKColumn string
	Table    string
}

var resourceMeta = map[ResourceType]ResourceMeta{
	ResourceStation:  {FKColumn: "station_id", Table: "station_events"},
	ResourceCrawler:  {FKColumn: "crawler_id", Table: "crawler_events"},
	ResourcePlatform: {FKColumn: "platform_id", Table: "platform_events"},
	ResourceRT:       {FKColumn: "rt_id", Table: "radio_terminal_events"},
	ResourceOperator: {FKColumn: "operator_id", Table: "operator_events"},
}

func (rt ResourceType) Meta() ResourceMeta {
	return resourceMeta[rt]
}
