// ssz: Go Simple Serialize (SSZ) codec library
// Copyright 2024 ssz Authors
// SPDX-License-Identifier: BSD-3-Clause

package resolve

// populateBuiltins seeds a fresh Scope with the primitives, type
// constructors and base classes every schema module starts with, per the
// built-ins list.
func populateBuiltins(s *Scope) {
	for _, name := range []string{
		"boolean", "null", "byte",
		"uint8", "uint16", "uint32", "uint64", "uint128", "uint256",
		"Container",
	} {
		s.idents[name] = TypeTarget{}
	}

	for n := 1; n <= 64; n++ {
		s.idents[bytesNName(n)] = TypeTarget{}
	}

	s.idents["Vector"] = CtorTarget{Sig: FixedSig{Args: []CtorArg{ArgKindTy, ArgKindInt}}}
	s.idents["List"] = CtorTarget{Sig: FixedSig{Args: []CtorArg{ArgKindTy, ArgKindInt}}}
	s.idents["Bitvector"] = CtorTarget{Sig: FixedSig{Args: []CtorArg{ArgKindInt}}}
	s.idents["Bitlist"] = CtorTarget{Sig: FixedSig{Args: []CtorArg{ArgKindInt}}}
	s.idents["Optional"] = CtorTarget{Sig: FixedSig{Args: []CtorArg{ArgKindTy}}}
	s.idents["StableContainer"] = CtorTarget{Sig: FixedSig{Args: []CtorArg{ArgKindInt}}}
	s.idents["Profile"] = CtorTarget{Sig: FixedSig{Args: []CtorArg{ArgKindTy}}}
	s.idents["Union"] = CtorTarget{Sig: VariableTySig{}}
}

func bytesNName(n int) string {
	digits := [3]byte{}
	i := len(digits)
	for n > 0 {
		i--
		digits[i] = byte('0' + n%10)
		n /= 10
	}
	return "Bytes" + string(digits[i:])
}
