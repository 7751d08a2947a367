package constant

const (
	// ReportsExchange carries every message of the rendering-surface channel.
	ReportsExchange = "clinic.reports"

	// RenderRoutingKey routes render requests from the manager to the surface.
	RenderRoutingKey = "reports.render"

	// AckRoutingKey routes surface acknowledgements back to the manager.
	AckRoutingKey = "reports.ack"

	// DefaultConsumerWorkers is the number of concurrent message handlers per queue.
	DefaultConsumerWorkers = 5

	// DefaultPrefetchCount bounds unacked deliveries per consumer channel.
	DefaultPrefetchCount = 10
)
