package server

// Данный сервер просто объединяет специфичные HTTP сервера, отвечающие за обработку конкретных сущностей
type Server struct {
	SearchServer
	CommunityServer
	CrawlServer
}

func NewServer(
	searchServer SearchServer,
	communityServer CommunityServer,
	crawlServer CrawlServer,
) Server {
	return Server{
		SearchServer:    searchServer,
		CommunityServer: communityServer,
		CrawlServer:     crawlServer,
	}
}
