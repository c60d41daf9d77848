package tool

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

type calculatorArgs struct {
	Expression string `json:"expression" description:"Simple arithmetic expression, e.g. '(12+5)*3'"`
}

// NewCalculatorTool returns a tool that evaluates basic arithmetic
// expressions over + - * / and parentheses.
func NewCalculatorTool() *FunctionTool {
	return NewFunctionToolFromStruct(
		"calculator",
		"Evaluate a basic arithmetic expression",
		calculatorArgs{},
		func(_ context.Context, args map[string]any) (any, error) {
			expr, _ := args["expression"].(string)
			result, err := evalExpression(expr)
			if err != nil {
				return fmt.Sprintf("Calculation error: %v", err), nil
			}
			return strconv.FormatFloat(result, 'f', -1, 64), nil
		},
		WithActionText("Crunching the numbers..."),
	)
}

// evalExpression evaluates an arithmetic expression with standard operator
// precedence. Only digits, + - * / ( ) . and spaces are accepted.
func evalExpression(expr string) (float64, error) {
	const allowed = "0123456789+-*/(). "
	for _, ch := range expr {
		if !strings.ContainsRune(allowed, ch) {
			return 0, fmt.Errorf("only numbers and + - * / ( ) are allowed")
		}
	}
	p := &exprParser{input: strings.ReplaceAll(expr, " ", "")}
	result, err := p.parseSum()
	if err != nil {
		return 0, err
	}
	if p.pos != len(p.input) {
		return 0, fmt.Errorf("unexpected character at position %d", p.pos)
	}
	return result, nil
}

type exprParser struct {
	input string
	pos   int
}

func (p *exprParser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *exprParser) parseSum() (float64, error) {
	left, err := p.parseProduct()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '+':
			p.pos++
			right, err := p.parseProduct()
			if err != nil {
				return 0, err
			}
			left += right
		case '-':
			p.pos++
			right, err := p.parseProduct()
			if err != nil {
				return 0, err
			}
			left -= right
		default:
			return left, nil
		}
	}
}

func (p *exprParser) parseProduct() (float64, error) {
	left, err := p.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '*':
			p.pos++
			right, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			left *= right
		case '/':
			p.pos++
			right, err := p.parseUnary()
			if err != nil {
				return 0, err
			}
			if right == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			left /= right
		default:
			return left, nil
		}
	}
}

func (p *exprParser) parseUnary() (float64, error) {
	if p.peek() == '-' {
		p.pos++
		v, err := p.parseUnary()
		return -v, err
	}
	return p.parseAtom()
}

func (p *exprParser) parseAtom() (float64, error) {
	if p.peek() == '(' {
		p.pos++
		v, err := p.parseSum()
		if err != nil {
			return 0, err
		}
		if p.peek() != ')' {
			return 0, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return v, nil
	}
	start := p.pos
	for p.pos < len(p.input) && (p.input[p.pos] >= '0' && p.input[p.pos] <= '9' || p.input[p.pos] == '.') {
		p.pos++
	}
	if start == p.pos {
		return 0, fmt.Errorf("expected number at position %d", start)
	}
	v, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", p.input[start:p.pos])
	}
	return v, nil
}
