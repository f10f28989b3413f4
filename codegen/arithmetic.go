package codegen

import (
	"accumula/ir"
	"accumula/vm"
)

// asConstant reports whether access is a compile-time literal, returning
// its value.
func asConstant(access ir.Access) (int64, bool) {
	c, ok := access.(ir.ConstantAccess)
	if !ok {
		return 0, false
	}
	return c.Value, true
}

func (g *Generator) translateLoadZero() {
	g.instr.sub(0)
}

func (g *Generator) translateNeg(loc memoryLocation) {
	g.instr.sub(loc)
	g.instr.sub(loc)
}

func (g *Generator) translateNegTmp() {
	tmp := g.getOrRegisterTemp("neg")
	g.instr.store(tmp)
	g.translateNeg(tmp)
}

func (g *Generator) translateAbs(loc memoryLocation) {
	done := g.newLabel()
	g.instr.emitJump(vm.OpJpos, done)
	g.translateNeg(loc)
	g.instr.placeLabel(done)
}

func (g *Generator) translateAbsTmp() {
	tmp := g.getOrRegisterTemp("abs")
	g.instr.store(tmp)
	g.translateAbs(tmp)
}

// newLabel allocates a fresh label through the same context every IR label
// came from, so translator-synthesized control flow (multiplication,
// division) shares the label/back-patch machinery with IR-level jumps.
func (g *Generator) newLabel() ir.Label {
	return g.context.NewLabel()
}

// translatePlus lowers Left + Right, peepholing a small (|v| <= 10)
// constant operand into a run of Inc/Dec against the other operand's
// load, and falling back to a full load-store-add otherwise.
func (g *Generator) translatePlus(left, right ir.Access) {
	if g.translateAddSubPeephole(left, right, true) {
		return
	}
	g.translateSimpleBinOp(left, right, g.instr.add)
}

// translateMinus mirrors translatePlus, with the extra peephole that a
// constant-0 left operand lowers to a negation of the right operand.
func (g *Generator) translateMinus(left, right ir.Access) {
	if v, ok := asConstant(right); ok {
		if g.translateConstOperandPeephole(left, v, false) {
			return
		}
	} else if v, ok := asConstant(left); ok && v == 0 {
		g.translateLoadAccess(right)
		g.translateNegTmp()
		return
	}
	g.translateSimpleBinOp(left, right, g.instr.sub)
}

// translateAddSubPeephole handles Plus's symmetric "either side is a small
// constant" case.
func (g *Generator) translateAddSubPeephole(left, right ir.Access, isPlus bool) bool {
	if v, ok := asConstant(left); ok {
		return g.translateConstOperandPeephole(right, v, isPlus)
	}
	if v, ok := asConstant(right); ok {
		return g.translateConstOperandPeephole(left, v, isPlus)
	}
	return false
}

// translateConstOperandPeephole loads other and applies n Inc/Dec for a
// constant magnitude within [-10, 10]; positive selects Inc for a positive
// contribution (Plus with n>0, or Minus with n<0) and Dec otherwise.
func (g *Generator) translateConstOperandPeephole(other ir.Access, n int64, isPlus bool) bool {
	if n == 0 {
		g.translateLoadAccess(other)
		return true
	}
	if n < -10 || n > 10 {
		return false
	}
	g.translateLoadAccess(other)
	positive := n > 0
	if !isPlus {
		positive = !positive
	}
	count := n
	if count < 0 {
		count = -count
	}
	op := g.instr.dec
	if positive {
		op = g.instr.inc
	}
	for i := int64(0); i < count; i++ {
		op()
	}
	return true
}

func (g *Generator) translateSimpleBinOp(left, right ir.Access, op func(memoryLocation)) {
	g.translateLoadAccess(right)
	tmp := g.getOrRegisterTemp("bin_op")
	g.instr.store(tmp)

	g.translateLoadAccess(left)
	op(tmp)
}

// translateOptimizedMultiplication handles the constant-operand special
// cases (0, +-1, +-2) so the general Russian-peasant routine only runs
// when neither side is one of these. Left takes priority if both sides
// happen to be constants, matching the priority translateAddSubPeephole
// gives Plus.
func (g *Generator) translateOptimizedMultiplication(left, right ir.Access) bool {
	if v, ok := asConstant(left); ok {
		return g.translateMulConstOperand(right, v)
	}
	if v, ok := asConstant(right); ok {
		return g.translateMulConstOperand(left, v)
	}
	return false
}

func (g *Generator) translateMulConstOperand(other ir.Access, v int64) bool {
	switch v {
	case 0:
		g.instr.sub(0)
		return true
	case 1:
		g.translateLoadAccess(other)
		return true
	case -1:
		g.translateLoadAccess(other)
		g.translateNegTmp()
		return true
	case 2:
		g.translateLoadAccess(other)
		g.instr.shift(g.constantLocation(1))
		return true
	case -2:
		g.translateLoadAccess(other)
		g.instr.shift(g.constantLocation(1))
		g.translateNegTmp()
		return true
	default:
		return false
	}
}

// translateMultiplication lowers Left * Right by the Russian-peasant
// algorithm: repeatedly halve the (absolute, sign-adjusted) right operand
// and double the left, accumulating left into the result whenever the
// current right is odd. Sign is folded in up front by negating both
// operands when right is negative; the early Jzero on right==0 leaves 0
// in the accumulator without entering the loop at all.
func (g *Generator) translateMultiplication(left, right ir.Access) {
	if g.translateOptimizedMultiplication(left, right) {
		return
	}

	leftTmp := g.getOrRegisterTemp("mul_left")
	rightTmp := g.getOrRegisterTemp("mul_right")
	tmp := g.getOrRegisterTemp("1")
	result := g.getOrRegisterTemp("mul_result")
	const1 := g.constantLocation(1)
	constNeg1 := g.constantLocation(-1)

	labelStart := g.newLabel()
	labelMain := g.newLabel()
	labelStep := g.newLabel()
	labelEnd := g.newLabel()
	labelRealEnd := g.newLabel()

	g.translateLoadAccess(left)
	g.instr.store(leftTmp)
	g.translateLoadAccess(right)
	g.instr.store(rightTmp)
	g.instr.emitJump(vm.OpJzero, labelRealEnd)
	g.instr.emitJump(vm.OpJpos, labelStart)

	g.translateNegTmp()
	g.instr.store(rightTmp)
	g.instr.load(leftTmp)
	g.translateNeg(leftTmp)
	g.instr.store(leftTmp)

	g.instr.load(rightTmp)

	g.instr.placeLabel(labelStart)
	g.instr.sub(0)
	g.instr.store(result)

	g.instr.placeLabel(labelMain)
	g.instr.load(rightTmp)
	g.instr.store(tmp)
	g.instr.shift(constNeg1)
	g.instr.shift(const1)
	g.instr.sub(tmp)
	g.instr.emitJump(vm.OpJzero, labelStep)

	g.instr.load(leftTmp)
	g.instr.add(result)
	g.instr.store(result)

	g.instr.placeLabel(labelStep)
	g.instr.load(rightTmp)
	g.instr.shift(constNeg1)
	g.instr.emitJump(vm.OpJzero, labelEnd)

	g.instr.store(rightTmp)
	g.instr.load(leftTmp)
	g.instr.shift(const1)
	g.instr.store(leftTmp)
	g.instr.emitJump(vm.OpJump, labelMain)

	g.instr.placeLabel(labelEnd)
	g.instr.load(result)

	g.instr.placeLabel(labelRealEnd)
}

func signum(v int64) int64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// translateOptimizedDivMod mirrors translateOptimizedMultiplication's
// constant-operand special cases for Div/Mod. Two literal operands only
// ever shortcut through the zero-dividend/zero-divisor case — Div/Mod of
// two arbitrary literals still runs the general algorithm below, matching
// the original translator's arm ordering exactly.
func (g *Generator) translateOptimizedDivMod(left, right ir.Access, div bool) bool {
	lv, lok := asConstant(left)
	rv, rok := asConstant(right)

	if lok && rok {
		if div && (signum(lv) == 0 || signum(rv) == 0) {
			g.translateLoadZero()
			return true
		}
		return false
	}
	if lok {
		if lv == 0 {
			g.instr.sub(0)
			return true
		}
		return false
	}
	if rok {
		switch rv {
		case 0:
			g.translateLoadZero()
			return true
		case 1:
			if !div {
				g.translateLoadZero()
				return true
			}
			g.translateLoadAccess(left)
			return true
		case -1:
			if !div {
				g.translateLoadZero()
				return true
			}
			g.translateLoadAccess(left)
			g.translateNegTmp()
			return true
		case 2:
			if div {
				g.translateLoadAccess(left)
				g.instr.shift(g.constantLocation(-1))
				return true
			}
			return false
		case -2:
			if div {
				g.translateLoadAccess(left)
				g.translateNegTmp()
				g.instr.shift(g.constantLocation(-1))
				return true
			}
			return false
		default:
			return false
		}
	}
	return false
}

// translateDivMod lowers Left/Right (div) or Left%Right (mod) with an
// unsigned scaled-subtractor: build a "multiple" of the divisor by
// repeated doubling until it no longer fits the dividend, then repeatedly
// try to subtract it (halving both the multiple and the scaled divisor
// each round) — this accumulates the quotient in binary, one bit per
// round, without the machine ever dividing. Sign correction afterward
// realizes floored division/modulo from the unsigned result by cases on
// the original operands' signs.
func (g *Generator) translateDivMod(left, right ir.Access, div bool) {
	if g.translateOptimizedDivMod(left, right, div) {
		return
	}

	labelWhileCondition := g.newLabel()
	labelWhileBody := g.newLabel()
	labelAfterIf := g.newLabel()
	labelDoBody := g.newLabel()
	labelAfterDo := g.newLabel()
	labelEnd := g.newLabel()

	const1 := g.constantLocation(1)
	constNeg1 := g.constantLocation(-1)

	originalDividend := g.getOrRegisterTemp("original_dividend")
	originalDivisor := g.getOrRegisterTemp("original_divisor")
	dividendAbs := g.getOrRegisterTemp("dividend_abs")
	scaledDivisor := g.getOrRegisterTemp("scaled_divisor")
	remain := g.getOrRegisterTemp("remain")
	result := g.getOrRegisterTemp("div_result")
	multiple := g.getOrRegisterTemp("div_multiple")

	g.translateLoadAccess(left)
	g.instr.store(originalDividend)
	g.translateAbs(originalDividend)
	g.instr.store(dividendAbs)
	g.instr.store(remain)

	g.translateLoadAccess(right)
	g.instr.emitJump(vm.OpJzero, labelEnd)
	g.instr.store(originalDivisor)
	g.translateAbs(originalDivisor)
	g.instr.store(scaledDivisor)
	g.instr.sub(0)
	g.instr.store(result)
	g.instr.inc()
	g.instr.store(multiple)

	g.instr.load(scaledDivisor)
	g.instr.emitJump(vm.OpJump, labelWhileCondition)

	g.instr.placeLabel(labelWhileBody)
	g.instr.load(multiple)
	g.instr.shift(const1)
	g.instr.store(multiple)
	g.instr.load(scaledDivisor)
	g.instr.shift(const1)
	g.instr.store(scaledDivisor)

	g.instr.placeLabel(labelWhileCondition)
	g.instr.sub(dividendAbs)
	g.instr.emitJump(vm.OpJneg, labelWhileBody)

	g.instr.placeLabel(labelDoBody)
	g.instr.load(remain)
	g.instr.sub(scaledDivisor)
	g.instr.emitJump(vm.OpJneg, labelAfterIf)

	g.instr.store(remain)
	g.instr.load(result)
	g.instr.add(multiple)
	g.instr.store(result)

	g.instr.placeLabel(labelAfterIf)
	g.instr.load(multiple)
	g.instr.shift(constNeg1)
	g.instr.emitJump(vm.OpJzero, labelAfterDo)
	g.instr.store(multiple)
	g.instr.load(scaledDivisor)
	g.instr.shift(constNeg1)
	g.instr.store(scaledDivisor)
	g.instr.emitJump(vm.OpJump, labelDoBody)

	g.instr.placeLabel(labelAfterDo)

	if div {
		labelRemainZero := g.newLabel()
		labelDividendNeg := g.newLabel()
		labelOnlyDivisorNeg := g.newLabel()
		labelBothNeg := g.newLabel()

		g.instr.load(originalDividend)
		g.instr.emitJump(vm.OpJneg, labelDividendNeg)

		g.instr.load(originalDivisor)
		g.instr.emitJump(vm.OpJneg, labelOnlyDivisorNeg)

		g.instr.placeLabel(labelBothNeg)
		g.instr.load(result)
		g.instr.emitJump(vm.OpJump, labelEnd)

		g.instr.placeLabel(labelDividendNeg)
		g.instr.load(originalDivisor)
		g.instr.emitJump(vm.OpJneg, labelBothNeg)

		g.instr.placeLabel(labelOnlyDivisorNeg)
		g.instr.load(remain)
		g.instr.emitJump(vm.OpJzero, labelRemainZero)
		g.instr.load(result)
		g.translateNeg(result)
		g.instr.dec()
		g.instr.emitJump(vm.OpJump, labelEnd)

		g.instr.placeLabel(labelRemainZero)
		g.instr.load(result)
		g.translateNeg(result)
		g.instr.emitJump(vm.OpJump, labelEnd)
	} else {
		labelDividendNeg := g.newLabel()
		labelOnlyDivisorNeg := g.newLabel()
		labelBothNeg := g.newLabel()

		g.instr.load(remain)
		g.instr.emitJump(vm.OpJzero, labelEnd)

		g.instr.load(originalDividend)
		g.instr.emitJump(vm.OpJneg, labelDividendNeg)

		g.instr.load(originalDivisor)
		g.instr.emitJump(vm.OpJneg, labelOnlyDivisorNeg)

		g.instr.load(remain)
		g.instr.emitJump(vm.OpJump, labelEnd)

		g.instr.placeLabel(labelDividendNeg)
		g.instr.load(originalDivisor)
		g.instr.emitJump(vm.OpJneg, labelBothNeg)

		g.instr.load(remain)
		g.instr.sub(originalDivisor)
		g.translateNegTmp()
		g.instr.emitJump(vm.OpJump, labelEnd)

		g.instr.placeLabel(labelOnlyDivisorNeg)
		g.instr.load(remain)
		g.instr.add(originalDivisor)
		g.instr.emitJump(vm.OpJump, labelEnd)

		g.instr.placeLabel(labelBothNeg)
		g.instr.load(remain)
		g.translateNeg(remain)
		g.instr.emitJump(vm.OpJump, labelEnd)
	}

	g.instr.placeLabel(labelEnd)
}
