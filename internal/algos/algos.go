// Package algos provides the bit addressors that decide in which order the bit slots of an image are visited.
package algos

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/zedseven/stegmark/internal/util"
)

// Algorithm definitions

// Defines a supported algorithm type.
type Algo int

// Simply determines whether a given algorithm is valid.
func (algo Algo) IsValid() bool {
	return algo > AlgoUnknown && algo <= maxAlgoVal
}

// Returns the name of the algorithm, or "<unknown>" if unknown.
func (algo Algo) String() string {
	switch algo {
	case AlgoSequential:
		return "sequential"
	case AlgoPattern:
		return "pattern"
	default:
		return "<unknown>"
	}
}

const (
	AlgoUnknown    Algo = iota     // An unknown algorithm type.
	AlgoSequential Algo = iota     // An algorithm that works sequentially, from 0 to Max.
	AlgoPattern    Algo = iota     // An algorithm that returns unique, random addresses in the range of 0 to Max.
	maxAlgoVal     Algo = iota - 1 // The maximum algorithm value, used for validity checking.
)

// Addressor hands out the next bit slot address, or an EmptyPoolError once every slot has been visited.
type Addressor func() (int64, error)

// Error types

// Thrown when an unknown algorithm type is provided.
type UnknownAlgoError struct {
	Algorithm Algo
}

func (e *UnknownAlgoError) Error() string {
	return fmt.Sprintf("The specified algorithm (%d) does not exist.", e.Algorithm)
}

// Thrown when an algorithm addressor is called but it's pool of available addresses to hand out is empty.
type EmptyPoolError struct{}

func (e *EmptyPoolError) Error() string {
	return "The pool of bit addresses is empty."
}

// Algorithm closures

// An algorithm that works sequentially, from 0 to slots - 1.
func SequentialAddressor(slots int64) Addressor {
	pos := int64(-1)
	return func() (int64, error) {
		pos++
		if pos >= slots {
			return -1, &EmptyPoolError{}
		}
		return pos, nil
	}
}

// An algorithm that returns unique, random addresses in the range of 0 to slots - 1.
// The same seed always produces the same order.
func PatternAddressor(seed, slots int64) Addressor {
	poolSize := slots
	pool := util.MakeRange(poolSize)
	rng := rand.New(rand.NewSource(seed))
	//An implementation of the Fisher-Yates shuffling algorithm, slightly re-purposed
	return func() (int64, error) {
		if poolSize <= 0 {
			return -1, &EmptyPoolError{}
		}

		j := rng.Int63n(poolSize) //Not crypto/rand, it has to be seedable

		poolSize--

		p := pool[j]

		pool[j] = pool[poolSize]
		pool = pool[:poolSize]

		return p, nil
	}
}

// Algorithm type interfacing methods

// Facilitates a running different algorithm addressors at runtime based on a provided algo value.
func AlgoAddressor(algo Algo, seed, slots int64) (Addressor, error) {
	switch algo {
	case AlgoSequential:
		return SequentialAddressor(slots), nil
	case AlgoPattern:
		return PatternAddressor(seed, slots), nil
	default:
		return nil, &UnknownAlgoError{algo}
	}
}

// Simply parses a string into an algorithm type, or AlgoUnknown if the string is not recognized.
func StringToAlgo(str string) Algo {
	switch strings.ToLower(str) {
	case "sequential":
		return AlgoSequential
	case "pattern":
		return AlgoPattern
	default:
		return AlgoUnknown
	}
}
