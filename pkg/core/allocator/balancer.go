package allocator

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/jakechorley/duty-roster/pkg/core/model"
)

// RandomSource breaks ties between equally loaded candidates
type RandomSource interface {
	// IntN returns a value in [0, n)
	IntN(n int) int
}

// NewSeededRandom returns a deterministic source. Two runs with the same seed and snapshot make the same choices.
func NewSeededRandom(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewRandom returns a source seeded from the operating system
func NewRandom() RandomSource {
	var buf [16]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		return rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return rand.New(rand.NewPCG(binary.LittleEndian.Uint64(buf[:8]), binary.LittleEndian.Uint64(buf[8:])))
}

// LoadBalancer picks the candidate who has held a slot the fewest times.
//
// Counts cover every record passed at construction plus every assignment recorded
// since, so a long run spreads work across its own earlier choices too.
type LoadBalancer struct {
	counts map[string]map[string]int // slot name -> staff ID -> count
	random RandomSource
}

func NewLoadBalancer(history []model.ShiftRecord, random RandomSource) *LoadBalancer {
	lb := &LoadBalancer{
		counts: make(map[string]map[string]int),
		random: random,
	}
	for _, record := range history {
		if record.HoldsStation() {
			lb.Record(record.StationName(), record.StaffID)
		}
		for _, role := range record.HeldRoles() {
			lb.Record(string(role), record.StaffID)
		}
	}
	return lb
}

// Count returns how many times staffID has held slot
func (lb *LoadBalancer) Count(slot, staffID string) int {
	return lb.counts[slot][staffID]
}

// Record adds one to the count for staffID on slot
func (lb *LoadBalancer) Record(slot, staffID string) {
	bySlot, ok := lb.counts[slot]
	if !ok {
		bySlot = make(map[string]int)
		lb.counts[slot] = bySlot
	}
	bySlot[staffID]++
}

// PickCandidate returns the least loaded candidate for slot.
// Ties are broken uniformly at random. An empty candidate set returns ErrNoEligibleCandidate.
func (lb *LoadBalancer) PickCandidate(slot string, candidates map[string]bool) (string, error) {
	lowest := -1
	var tied []string
	for staffID, ok := range candidates {
		if !ok {
			continue
		}
		count := lb.Count(slot, staffID)
		switch {
		case lowest == -1 || count < lowest:
			lowest = count
			tied = []string{staffID}
		case count == lowest:
			tied = append(tied, staffID)
		}
	}

	if len(tied) == 0 {
		return "", ErrNoEligibleCandidate
	}
	if len(tied) == 1 {
		return tied[0], nil
	}

	// Map order is random so sort before drawing to keep seeded runs reproducible
	sort.Strings(tied)
	return tied[lb.random.IntN(len(tied))], nil
}
