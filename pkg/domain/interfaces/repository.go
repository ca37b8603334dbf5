package interfaces

// Repository defines the interface for the authoritative local
// collection. Only the mutation layer writes through it; query and
// aggregation consumers are read-only.
type Repository interface {
	Board() BoardRepository
	Card() CardRepository
	Activity() ActivityRepository
	Partner() PartnerRepository

	Close() error
}
