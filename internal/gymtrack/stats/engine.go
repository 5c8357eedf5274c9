package stats

import (
	"encoding/json"

	"github.com/2beens/gymtrack/internal/gymtrack/training"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	megabyte         = 1024 * 1024
	DefaultCacheSize = 8 * megabyte
	statsCacheExpire = 0 // never, the cache is cleared on every store mutation
)

// Engine memoizes Compute results per normalized exercise name.
// The caller must call Clear whenever the trainings change.
type Engine struct {
	cache *freecache.Cache
}

func NewEngine(cacheSize int) *Engine {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	return &Engine{
		cache: freecache.NewCache(cacheSize),
	}
}

func (e *Engine) ExerciseStats(trainings []training.Training, exerciseName string) *ExerciseStats {
	cacheKey := []byte("stats::" + training.NormalizeName(exerciseName))

	if statsBytes, err := e.cache.Get(cacheKey); err == nil {
		var cached *ExerciseStats
		if err := json.Unmarshal(statsBytes, &cached); err == nil {
			return cached
		} else {
			log.Errorf("unmarshal cached stats for [%s]: %s", exerciseName, err)
		}
	}

	stats := Compute(trainings, exerciseName)

	// nil results are cached too, as "null"
	statsBytes, err := json.Marshal(stats)
	if err != nil {
		log.Errorf("marshal stats for [%s]: %s", exerciseName, err)
		return stats
	}
	if err := e.cache.Set(cacheKey, statsBytes, statsCacheExpire); err != nil {
		log.Errorf("set stats cache for [%s]: %s", exerciseName, err)
	}

	return stats
}

func (e *Engine) All(trainings []training.Training) []ExerciseStats {
	all := All(trainings)
	for i := range all {
		statsBytes, err := json.Marshal(&all[i])
		if err != nil {
			continue
		}
		cacheKey := []byte("stats::" + training.NormalizeName(all[i].ExerciseName))
		if err := e.cache.Set(cacheKey, statsBytes, statsCacheExpire); err != nil {
			log.Errorf("set stats cache for [%s]: %s", all[i].ExerciseName, err)
		}
	}
	return all
}

func (e *Engine) Clear() {
	e.cache.Clear()
}

// CacheCounts returns the cache hit and miss counts, mostly for tests and debug logs.
func (e *Engine) CacheCounts() (hits, misses int64) {
	return e.cache.HitCount(), e.cache.MissCount()
}
