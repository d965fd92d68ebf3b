// Package trc computes custom transimpedance-response compensation settings.
//
// Given a device specification, a feedback range, the feedback capacitance
// and a target gain-bandwidth, Calculate places a compensation zero and pole:
//
//  1. The natural pole of the feedback network is
//     f_cap = 1 / (2π · (R_eff · C + loop_delay)).
//  2. A provisional zero z0 is the larger of f_cap and
//     sqrt(GBW · f_cap / max_pole_zero_ratio).
//  3. The pole is z0 · max_pole_zero_ratio, capped at 4 · GBW.
//  4. The zero is z0, capped at pole · max_pole_zero_ratio.
//
// The reported compensation frequency is the geometric mean of pole and zero
// and the pole-zero ratio is pole / zero. Inputs are not re-validated; callers
// are expected to pass physical values. When the 4 · GBW cap pulls the pole
// below the natural pole the result has a ratio below one. That regime is
// reported as computed.
package trc
