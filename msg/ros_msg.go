package msg

import (
	"encoding/json"
	"math"
	"time"
)

type ROS_header struct {
	Seq      uint32    `json:"seq"`
	Stamp    TimeStamp `json:"stamp"`
	Frame_id string    `json:"frame_id"`
}

type TimeStamp struct {
	Secs  uint32 `json:"secs"`
	Nsecs uint32 `json:"nsecs"`
}

func (t TimeStamp) Time() time.Time {
	return time.Unix(int64(t.Secs), int64(t.Nsecs))
}

func (t TimeStamp) Float64() float64 {
	return float64(t.Secs) + float64(t.Nsecs)*1e-9
}

func FtoStamp(f float64) TimeStamp {
	sec, dec := math.Modf(f)
	return TimeStamp{
		Secs:  uint32(sec),
		Nsecs: uint32(dec * 1e9),
	}
}

func CalcStamp(t time.Time) TimeStamp {
	return TimeStamp{
		Secs:  uint32(t.Unix()),
		Nsecs: uint32(t.Nanosecond()),
	}
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (p Point) Distance(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

type Quaternion struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

type Pose struct {
	Position    Point      `json:"position"`
	Orientation Quaternion `json:"orientation"`
}

type ROS_PoseStamped struct {
	Header ROS_header `json:"header"`
	Pose   Pose       `json:"pose"`
}

type Path struct {
	Header ROS_header        `json:"header"`
	Poses  []ROS_PoseStamped `json:"poses"`
}

// NewPath builds a path from timed positions [t, x, y]. Each pose faces
// along the segment that reaches it; the first pose faces the second one.
func NewPath(route [][3]float64, frame string, stamp time.Time) Path {
	poses := make([]ROS_PoseStamped, 0, len(route))
	for i := range route {
		var yaw float64
		switch {
		case i > 0:
			yaw = math.Atan2(route[i][2]-route[i-1][2], route[i][1]-route[i-1][1])
		case len(route) > 1:
			yaw = math.Atan2(route[1][2]-route[0][2], route[1][1]-route[0][1])
		}
		poses = append(poses, ROS_PoseStamped{
			Header: ROS_header{
				Seq:      uint32(i),
				Stamp:    FtoStamp(route[i][0]),
				Frame_id: frame,
			},
			Pose: Pose{
				Position:    Point{X: route[i][1], Y: route[i][2]},
				Orientation: Yaw2Quaternion(yaw),
			},
		})
	}

	return Path{
		Header: ROS_header{Stamp: CalcStamp(stamp), Frame_id: frame},
		Poses:  poses,
	}
}

// Payload is the JSON message body.
func (p Path) Payload() ([]byte, error) {
	return json.MarshalIndent(p, "", " ")
}

// Length is the planar length of the path.
func (p Path) Length() float64 {
	l := 0.0
	for i := 1; i < len(p.Poses); i++ {
		l += p.Poses[i-1].Pose.Position.Distance(p.Poses[i].Pose.Position)
	}
	return l
}

// Duration is the time between the first and the last pose.
func (p Path) Duration() time.Duration {
	if len(p.Poses) < 2 {
		return 0
	}
	return p.Poses[len(p.Poses)-1].Header.Stamp.Time().Sub(p.Poses[0].Header.Stamp.Time())
}

// FinalYaw is the heading of the last pose.
func (p Path) FinalYaw() float64 {
	if len(p.Poses) == 0 {
		return 0
	}
	return Quaternion2Yaw(p.Poses[len(p.Poses)-1].Pose.Orientation)
}

func Yaw2Quaternion(yaw float64) Quaternion {
	return Quaternion{W: math.Cos(yaw / 2), Z: math.Sin(yaw / 2)}
}

// Quaternion2Yaw is the rotation about z of q.
func Quaternion2Yaw(q Quaternion) float64 {
	return math.Atan2(2*(q.W*q.Z+q.X*q.Y), 1-2*(q.Y*q.Y+q.Z*q.Z))
}
