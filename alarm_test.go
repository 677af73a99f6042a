package ioloop

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAlarmSchedulerOrdersByDueTime(t *testing.T) {
	s := newAlarmScheduler()
	base := TimeVal{Sec: 1000}

	var fired []string
	s.schedule(base.addMillis(300), func(any) { fired = append(fired, "c") }, nil)
	s.schedule(base.addMillis(100), func(any) { fired = append(fired, "a") }, nil)
	s.schedule(base.addMillis(200), func(any) { fired = append(fired, "b") }, nil)

	require.Equal(t, base.addMillis(100), s.due().when)
	s.fire()
	s.fire()
	s.fire()

	require.Equal(t, []string{"a", "b", "c"}, fired)
	require.Nil(t, s.due())
}

func TestTimeValNormalizeCarries(t *testing.T) {
	t1 := TimeVal{Sec: 10, Usec: 1_500_000}.normalize()
	require.Equal(t, int64(11), t1.Sec)
	require.Equal(t, int64(500_000), t1.Usec)

	t2 := TimeVal{Sec: 10, Usec: -1}.normalize()
	require.Equal(t, int64(9), t2.Sec)
	require.Equal(t, int64(999_999), t2.Usec)
}

func TestTimeValAddMillis(t *testing.T) {
	base := TimeVal{Sec: 5, Usec: 900_000}
	got := base.addMillis(150)
	require.Equal(t, TimeVal{Sec: 6, Usec: 50_000}, got)
}
