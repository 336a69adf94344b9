package utils

import (
	"runtime"
	"sync"
)

// PartitionMap splits the index range [Offset, Offset+MaxIndex) into
// ParallelDegree contiguous buckets with a maximum imbalance of one item
type PartitionMap struct {
	MaxIndex       int
	Offset         int
	ParallelDegree int
	Partitions     [][2]int // Beginning and end index of partitions, offset applied
}

// NewPartitionMapOffset partitions [offset, offset+maxIndex). A ParallelDegree
// below one selects runtime.NumCPU()
func NewPartitionMapOffset(ParallelDegree, offset, maxIndex int) (pm *PartitionMap) {
	if ParallelDegree < 1 {
		ParallelDegree = runtime.NumCPU()
	}
	pm = &PartitionMap{
		MaxIndex:       maxIndex,
		Offset:         offset,
		ParallelDegree: ParallelDegree,
		Partitions:     make([][2]int, ParallelDegree),
	}
	for n := 0; n < ParallelDegree; n++ {
		bucket := pm.Split1D(n)
		pm.Partitions[n] = [2]int{bucket[0] + offset, bucket[1] + offset}
	}
	return
}

func (pm *PartitionMap) GetBucketRange(bucketNum int) (kMin, kMax int) {
	kMin, kMax = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

func (pm *PartitionMap) Split1D(threadNum int) (bucket [2]int) {
	// This routine splits one dimension into c.ParallelDegree pieces, with a maximum imbalance of one item
	var (
		Npart            = pm.MaxIndex / (pm.ParallelDegree)
		startAdd, endAdd int
		remainder        int
	)
	remainder = pm.MaxIndex % pm.ParallelDegree
	if remainder != 0 { // spread the remainder over the first chunks evenly
		if threadNum+1 > remainder {
			startAdd = remainder
			endAdd = 0
		} else {
			startAdd = threadNum
			endAdd = 1
		}
	}
	bucket[0] = threadNum*Npart + startAdd
	bucket[1] = bucket[0] + Npart + endAdd
	return
}

// Run calls fn for every non-empty bucket on its own goroutine and returns
// after all of them complete
func (pm *PartitionMap) Run(fn func(np, kMin, kMax int)) {
	var (
		wg = sync.WaitGroup{}
	)
	for np := 0; np < pm.ParallelDegree; np++ {
		kMin, kMax := pm.GetBucketRange(np)
		if kMax == kMin {
			continue
		}
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			fn(np, kMin, kMax)
		}(np)
	}
	wg.Wait()
}
