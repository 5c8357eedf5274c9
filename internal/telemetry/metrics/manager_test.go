package metrics_test

import (
	"strings"
	"testing"

	"github.com/2beens/gymtrack/internal/telemetry/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager_RegistersOnPrometheusRegistry(t *testing.T) {
	reg := metrics.SetupPrometheus()
	m := metrics.NewManager("gymtrack", "main", reg)

	m.GaugeLifeSignal.Set(1)
	m.CounterMigratedTrainings.Add(3)
	m.CounterStoreMutations.WithLabelValues("add_training").Inc()

	families, err := reg.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, mf := range families {
		names[mf.GetName()] = true
	}
	assert.True(t, names["gymtrack_main_life_signal"])
	assert.True(t, names["gymtrack_main_migrated_trainings"])
	assert.True(t, names["gymtrack_main_store_mutations"])
	assert.True(t, names["go_goroutines"], "runtime collectors registered")

	expected := `
# HELP gymtrack_main_migrated_trainings The total number of trainings upgraded from the legacy shape
# TYPE gymtrack_main_migrated_trainings counter
gymtrack_main_migrated_trainings 3
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "gymtrack_main_migrated_trainings"))
}

func TestNewTestManagerAndRegistry_Isolated(t *testing.T) {
	m1, reg1 := metrics.NewTestManagerAndRegistry()
	m2, _ := metrics.NewTestManagerAndRegistry()

	m1.CounterPersistFailures.Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(m1.CounterPersistFailures))
	assert.Equal(t, 0.0, testutil.ToFloat64(m2.CounterPersistFailures))

	count, err := testutil.GatherAndCount(reg1, "gymtrack_test_persist_failures")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
