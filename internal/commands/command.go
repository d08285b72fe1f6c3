package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeTask    Type = "task"
	TypePlan    Type = "plan"
	TypeShow    Type = "show"
	TypeRestore Type = "restore"
	TypePurge   Type = "purge"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type TaskArgs struct {
	Text string
}

type PlanArgs struct {
	Title       string
	Description string
}

type ShowArgs struct {
	Subject string
}

type TargetArgs struct {
	ID string
}

type Command struct {
	Type    Type
	Raw     string
	Task    *TaskArgs
	Plan    *PlanArgs
	Show    *ShowArgs
	Restore *TargetArgs
	Purge   *TargetArgs
}

// Show subjects accepted by the show command.
var showSubjects = map[string]string{
	"tasks":     "tasks",
	"task":      "tasks",
	"plans":     "plans",
	"plan":      "plans",
	"completed": "completed",
	"done":      "completed",
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	head, rest, _ := strings.Cut(raw, " ")
	head = strings.ToLower(head)
	rest = strings.TrimSpace(rest)

	switch Type(head) {
	case TypeTask:
		return parseTask(input, rest)
	case TypePlan:
		return parsePlan(input, rest)
	case TypeShow:
		return parseShow(input, rest)
	case TypeRestore, TypePurge:
		return parseTarget(input, Type(head), rest)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseTask(raw, rest string) (Command, error) {
	if rest == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "task requires text"}
	}
	return Command{Type: TypeTask, Raw: raw, Task: &TaskArgs{Text: rest}}, nil
}

// parsePlan expects "<title> | <description>".
func parsePlan(raw, rest string) (Command, error) {
	title, desc, ok := strings.Cut(rest, "|")
	title = strings.TrimSpace(title)
	desc = strings.TrimSpace(desc)
	if !ok || title == "" || desc == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "plan requires <title> | <description>"}
	}
	return Command{Type: TypePlan, Raw: raw, Plan: &PlanArgs{Title: title, Description: desc}}, nil
}

func parseShow(raw, rest string) (Command, error) {
	if rest == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires tasks, plans or completed"}
	}
	subject, ok := showSubjects[strings.ToLower(strings.Fields(rest)[0])]
	if !ok {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown show subject: %s", rest)}
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Subject: subject}}, nil
}

func parseTarget(raw string, typ Type, rest string) (Command, error) {
	fields := strings.Fields(rest)
	if len(fields) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a completed task id", typ)}
	}
	cmd := Command{Type: typ, Raw: raw}
	if typ == TypeRestore {
		cmd.Restore = &TargetArgs{ID: fields[0]}
	} else {
		cmd.Purge = &TargetArgs{ID: fields[0]}
	}
	return cmd, nil
}
