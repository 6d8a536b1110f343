package sim

import (
	"reflect"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/rs/xid"
	"github.com/rs/zerolog/log"
)

var (
	idGeneratorMutex sync.Mutex
	idGenerator      IDGenerator
)

// IDGenerator can generate IDs
type IDGenerator interface {
	// Generate an ID
	Generate() string
}

// UseSequentialIDGenerator configures the ID generator to generate IDs in
// sequential. Sequential IDs keep simulations reproducible.
func UseSequentialIDGenerator() {
	setIDGenerator(&sequentialIDGenerator{})
}

// UseGloballyUniqueIDGenerator configures the ID generator to generate IDs
// that are unique across runs. The IDs generated will not be deterministic.
func UseGloballyUniqueIDGenerator() {
	setIDGenerator(xidGenerator{})
}

func setIDGenerator(g IDGenerator) {
	idGeneratorMutex.Lock()
	defer idGeneratorMutex.Unlock()

	if idGenerator == nil {
		idGenerator = g
		return
	}

	if reflect.TypeOf(idGenerator) != reflect.TypeOf(g) {
		log.Panic().Msg("cannot change id generator type after using it")
	}
}

// GetIDGenerator returns the ID generator used in the current process. It
// falls back to the sequential generator.
func GetIDGenerator() IDGenerator {
	idGeneratorMutex.Lock()
	defer idGeneratorMutex.Unlock()

	if idGenerator == nil {
		idGenerator = &sequentialIDGenerator{}
	}

	return idGenerator
}

type sequentialIDGenerator struct {
	nextID uint64
}

func (g *sequentialIDGenerator) Generate() string {
	idNumber := atomic.AddUint64(&g.nextID, 1)

	return strconv.FormatUint(idNumber, 10)
}

type xidGenerator struct{}

func (xidGenerator) Generate() string {
	return xid.New().String()
}
