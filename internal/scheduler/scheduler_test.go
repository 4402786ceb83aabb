package scheduler

import "testing"

func TestSchedulerAddJob(t *testing.T) {
	s := New()
	if err := s.AddJob("0 8 * * *", func() {}); err != nil {
		t.Errorf("expected no error adding job, got %v", err)
	}
}

func TestSchedulerRejectsBadExpression(t *testing.T) {
	s := New()
	if err := s.AddJob("not a cron line", func() {}); err == nil {
		t.Error("expected an error for an invalid expression")
	}
}
