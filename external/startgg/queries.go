package startgg

// GraphQL documents sent to the start.gg API. Standings come back ordered by
// placement; the API exposes no total count for this query, so pagination
// stops on the first short page.
const (
	queryEventBySlug = `query EventBySlug($slug: String!) {
  event(slug: $slug) {
    id
    name
    slug
  }
}`

	queryEventWithTournament = `query EventWithTournament($slug: String!) {
  event(slug: $slug) {
    id
    name
    slug
    tournament {
      id
      name
    }
  }
}`

	queryEventStandings = `query EventStandings($eventId: ID!, $page: Int!, $perPage: Int!) {
  event(id: $eventId) {
    id
    standings(query: { page: $page, perPage: $perPage }) {
      nodes {
        placement
        entrant {
          id
          name
          participants {
            id
            gamerTag
            player {
              id
              gamerTag
            }
          }
        }
      }
    }
  }
}`

	queryTournamentEvents = `query TournamentEvents($slug: String!) {
  tournament(slug: $slug) {
    id
    name
    slug
    events {
      id
      name
      slug
    }
  }
}`
)
