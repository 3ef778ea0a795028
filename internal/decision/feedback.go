package decision

import "github.com/angel-assistant/angel-core/internal/profile"

// FeedbackPolicy reacts to user feedback on a recommendation batch. The
// engine records feedback in the profile store regardless of policy; the
// policy decides whether and how scoring should change over time.
type FeedbackPolicy interface {
	Apply(batch *Batch, fb profile.Feedback)
}

// LoggingPolicy observes feedback without changing engine behaviour. The
// learning rate and feedback weight are carried through configuration so a
// future adaptive policy can consume them, but no weight update happens
// here.
type LoggingPolicy struct {
	logger             Logger
	learningRate       float64
	userFeedbackWeight float64
}

// NewLoggingPolicy creates a policy that logs feedback and does nothing else.
func NewLoggingPolicy(logger Logger, learningRate, userFeedbackWeight float64) *LoggingPolicy {
	if logger == nil {
		logger = noopLogger{}
	}
	return &LoggingPolicy{
		logger:             logger,
		learningRate:       learningRate,
		userFeedbackWeight: userFeedbackWeight,
	}
}

// Apply logs the feedback outcome against the batch that produced it.
func (p *LoggingPolicy) Apply(batch *Batch, fb profile.Feedback) {
	p.logger.Info("feedback received",
		"batch_id", batch.ID,
		"user_id", batch.UserID,
		"activity", batch.Activity,
		"accepted", fb.Accepted,
		"learning_rate", p.learningRate,
		"user_feedback_weight", p.userFeedbackWeight,
	)
}
