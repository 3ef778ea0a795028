package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteActivity records one activity observation. The write is
// non-blocking; data is batched and sent asynchronously.
func (c *Client) WriteActivity(userID, activity string, confidence float64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"activity",
		map[string]string{
			"user_id":  userID,
			"activity": activity,
		},
		map[string]interface{}{
			"confidence": confidence,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteRecommendation records one recommendation batch: its resolved
// activity, time of day, candidate count, and the top candidate with its
// priority.
func (c *Client) WriteRecommendation(userID, activity, timeOfDay, topType string, topPriority float64, candidates int) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"recommendation",
		map[string]string{
			"user_id":     userID,
			"activity":    activity,
			"time_of_day": timeOfDay,
		},
		map[string]interface{}{
			"top_type":     topType,
			"top_priority": topPriority,
			"candidates":   candidates,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteScenario records one scenario run and its outcome.
func (c *Client) WriteScenario(name string, success bool, steps int) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"scenario",
		map[string]string{
			"scenario": name,
		},
		map[string]interface{}{
			"success": success,
			"steps":   steps,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}
