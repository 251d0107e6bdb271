package downloader

import (
	"fmt"

	"github.com/echo360-dl/echo360/lecture"
)

// Task is one file to download.
type Task struct {
	Filename string
	Video    lecture.Entry
}

// Filter keeps the videos recorded within r, in their original order.
func Filter(videos []lecture.Entry, r DateRange) ([]lecture.Entry, error) {
	var filtered []lecture.Entry
	for _, video := range videos {
		ok, err := r.Contains(video.Date())
		if err != nil {
			return nil, err
		}
		if ok {
			filtered = append(filtered, video)
		}
	}
	return filtered, nil
}

// Plan turns the selected videos into tasks in download order: selected videos from
// last to first, the parts of each from last to first. A video's lecture number is its
// position in the full list, so numbering does not depend on the selection. Parts of a
// multi-part video are numbered <n>.1 to <n>.k in playback order.
func Plan(courseID string, all, selected []lecture.Entry) []Task {
	position := make(map[lecture.Entry]int, len(all))
	for i, video := range all {
		if _, seen := position[video]; !seen {
			position[video] = i
		}
	}

	var tasks []Task
	for i := len(selected) - 1; i >= 0; i-- {
		video := selected[i]
		number := position[video] + 1

		parts := video.Parts()
		for k := len(parts) - 1; k >= 0; k-- {
			part := parts[k]

			label := fmt.Sprint(number)
			if len(parts) > 1 {
				label = fmt.Sprintf("%d.%d", number, k+1)
			}

			tasks = append(tasks, Task{
				Filename: Filename(courseID, part.Date(), label, part.Title()),
				Video:    part,
			})
		}
	}

	return tasks
}
