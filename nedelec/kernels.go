package nedelec

import "math"

// refAreaScale converts integrals of the tabulated rule to the reference
// triangle normalization used by all three element kernels
const refAreaScale = 0.5

/*
stiffness is the curl-curl term for basis functions k and l

	1/|det Bk| * sign_k * sign_l * 0.5 * curl_k * curl_l

The curl of the lowest order functions is constant, so no quadrature is needed.
*/
func stiffness(b *Basis, detBk float64, signK, signL, k, l int) float64 {
	local := 1 / math.Abs(detBk) * float64(signL*signK)
	return local * refAreaScale * b.CVal[k] * b.CVal[l]
}

/*
mass is the zero order term for basis functions k and l

	|det Bk| * sign_k * sign_l * 0.5 * sum_i w_i (C psi_k(i)) . psi_l(i)

with C = invBk invBk^T computed once per cell.
*/
func mass(C [4]float64, fs *FunctionSpace, detBk float64, signK, signL, k, l int) float64 {
	var (
		local = math.Abs(detBk) * float64(signK*signL)
		sum   float64
	)
	for i := 0; i < fs.Basis.M; i++ {
		vk, vl := fs.Basis.Value(k, i), fs.Basis.Value(l, i)
		x := C[0]*vk[0] + C[1]*vk[1]
		y := C[2]*vk[0] + C[3]*vk[1]
		sum += fs.Q.W[i] * (x*vl[0] + y*vl[1])
	}
	return local * sum * refAreaScale
}

/*
load is the source term for basis function k

	|det Bk| * sign_k * 0.5 * sum_i w_i (invBk^T psi_k(i)) . F
*/
func load(invBk [4]float64, fs *FunctionSpace, detBk float64, k, signK int, F [2]float64) float64 {
	var (
		local = math.Abs(detBk) * float64(signK)
		sum   float64
	)
	for i := 0; i < fs.Basis.M; i++ {
		vk := fs.Basis.Value(k, i)
		// Transpose applied by index, invBk is row major
		x := invBk[0]*vk[0] + invBk[2]*vk[1]
		y := invBk[1]*vk[0] + invBk[3]*vk[1]
		sum += fs.Q.W[i] * (x*F[0] + y*F[1])
	}
	return local * sum * refAreaScale
}

// invBkInvBkT is invBk * invBk^T for a row major 2x2 matrix
func invBkInvBkT(invBk [4]float64) (C [4]float64) {
	C[0] = invBk[0]*invBk[0] + invBk[1]*invBk[1] // a^2 + b^2
	C[1] = invBk[0]*invBk[2] + invBk[1]*invBk[3] // ac + bd
	C[2] = C[1]
	C[3] = invBk[2]*invBk[2] + invBk[3]*invBk[3] // c^2 + d^2
	return
}
