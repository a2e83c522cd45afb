package orbital

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestR1R3(t *testing.T) {
	x := math.Pi / 3.0
	s, c := math.Sincos(x)
	r1 := R1(x)
	r3m := R3(x)
	if r1.At(0, 0) != r3m.At(2, 2) || r3m.At(2, 2) != 1 {
		t.Fatal("expected R1.At(0, 0) = R3.At(2, 2) = 1")
	}
	if r1.At(0, 1) != r1.At(0, 2) || r1.At(1, 0) != r1.At(2, 0) || r1.At(0, 1) != 0 {
		t.Fatal("misplaced zeros in R1")
	}
	if r3m.At(2, 0) != r3m.At(2, 1) || r3m.At(0, 2) != r3m.At(1, 2) || r3m.At(1, 2) != 0 {
		t.Fatal("misplaced zeros in R3")
	}
	if r1.At(1, 1) != r1.At(2, 2) || r1.At(2, 2) != c {
		t.Fatal("expected R1 cosines misplaced")
	}
	if r1.At(2, 1) != -r1.At(1, 2) || r1.At(1, 2) != s {
		t.Fatal("expected R1 sines misplaced")
	}
	if r3m.At(1, 1) != r3m.At(0, 0) || r3m.At(0, 0) != c {
		t.Fatal("expected R3 cosines misplaced")
	}
	if r3m.At(0, 1) != -r3m.At(1, 0) || r3m.At(0, 1) != s {
		t.Fatal("expected R3 sines misplaced")
	}
}

// r3r1r3 is the closed form 3-1-3 Euler rotation R3(θ3)·R1(θ2)·R3(θ1),
// from Schaub and Junkins.
func r3r1r3(θ1, θ2, θ3 float64) *mat.Dense {
	sθ1, cθ1 := math.Sincos(θ1)
	sθ2, cθ2 := math.Sincos(θ2)
	sθ3, cθ3 := math.Sincos(θ3)
	return mat.NewDense(3, 3, []float64{cθ3*cθ1 - sθ3*cθ2*sθ1, cθ3*sθ1 + sθ3*cθ2*cθ1, sθ3 * sθ2,
		-sθ3*cθ1 - cθ3*cθ2*sθ1, -sθ3*sθ1 + cθ3*cθ2*cθ1, cθ3 * sθ2,
		sθ2 * sθ1, -sθ2 * cθ1, cθ2})
}

func TestRot313(t *testing.T) {
	θ1 := math.Pi / 17
	θ2 := math.Pi / 16
	θ3 := math.Pi / 15
	if !mat.EqualApprox(ThreeOneThree(θ3, θ2, θ1), r3r1r3(θ1, θ2, θ3), 1e-15) {
		t.Logf("\n%v", mat.Formatted(ThreeOneThree(θ3, θ2, θ1)))
		t.Logf("\n%v", mat.Formatted(r3r1r3(θ1, θ2, θ3)))
		t.Fatal("3-1-3 rotations differ")
	}
}

func TestRotationsAreOrthonormal(t *testing.T) {
	angles := []float64{0, math.Pi / 6, math.Pi / 2, 2, math.Pi, 3 * math.Pi / 2, 5.9}
	for _, ω := range angles {
		for _, i := range angles {
			for _, Ω := range angles {
				m := ThreeOneThree(ω, i, Ω)
				if !IsRotation(m, 1e-12) {
					t.Fatalf("ω=%f i=%f Ω=%f: not a rotation\n%v", ω, i, Ω, mat.Formatted(m))
				}
				// Perifocal to inertial and back.
				v := r3.Vec{X: 1.5, Y: -2, Z: 0.25}
				back := InertialToPerifocal(ω, i, Ω, PerifocalToInertial(ω, i, Ω, v))
				if !vectorsEqual(v, back, 1e-14) {
					t.Fatalf("ω=%f i=%f Ω=%f: %+v != %+v", ω, i, Ω, back, v)
				}
			}
		}
	}
	if IsRotation(mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, -1}), 1e-12) {
		t.Fatal("a reflection is not a rotation")
	}
	if IsRotation(mat.NewDense(2, 2, []float64{1, 0, 0, 1}), 1e-12) {
		t.Fatal("a 2x2 matrix is not a 3D rotation")
	}
}

func TestPQW2ECI(t *testing.T) {
	i := Deg2rad(87.87)
	ω := Deg2rad(53.38)
	Ω := Deg2rad(227.89)
	Rp := PerifocalToInertial(ω, i, Ω, r3.Vec{X: -466.7639, Y: 11447.0219})
	Re := r3.Vec{X: 6525.368103709379, Y: 6861.531814548294, Z: 6449.118636407358}
	if !vectorsEqual(Re, Rp, eps) {
		t.Fatalf("R conversion failed: %+v", Rp)
	}
	Vp := PerifocalToInertial(ω, i, Ω, r3.Vec{X: -5.996222, Y: 4.753601})
	Ve := r3.Vec{X: 4.902278620687254, Y: 5.533139558121602, Z: -1.9757104281719946}
	if !vectorsEqual(Ve, Vp, eps) {
		t.Fatalf("V conversion failed: %+v", Vp)
	}
}

func TestMakeFrame(t *testing.T) {
	R := r3.Vec{X: 6525.368, Y: 6861.532, Z: 6449.119}
	V := r3.Vec{X: 4.902276, Y: 5.533124, Z: -1.975709}
	frame, err := MakeFrame(R, V)
	if err != nil {
		t.Fatal(err)
	}
	if !IsRotation(frame, 1e-12) {
		t.Fatalf("not a rotation\n%v", mat.Formatted(frame))
	}
	// The position is purely radial in that frame.
	inFrame := MxV33(frame, R)
	if !vectorsEqual(r3.Vec{X: r3.Norm(R)}, inFrame, 1e-12) {
		t.Fatalf("R in the radial frame is %+v", inFrame)
	}
	// And the velocity has no normal component.
	if vf := MxV33(frame, V); math.Abs(vf.Z) > 1e-12 {
		t.Fatalf("V in the radial frame is %+v", vf)
	}
	if _, err := MakeFrame(r3.Vec{}, V); err == nil {
		t.Fatal("zero position should fail")
	}
}
